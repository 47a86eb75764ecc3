package league

import "github.com/pfrederiksen/rlol/internal/tabular"

// Column aliases shared by every builder, most preferred spelling first.
// Lookups also match by normalized key, so case and punctuation variants
// ("Team ID", "team-id") need not be listed.
var (
	FieldTeamID   = tabular.NewField("team_id", "team_id", "TeamID", "Team_ID", "teamId", "id", "ID")
	FieldTeamName = tabular.NewField("team_name", "team_name", "Team", "team", "Team Name", "name", "Name")
	FieldLogo     = tabular.NewField("logo", "logo_url", "logo", "Logo", "Logo URL", "logoUrl")
	FieldAbbr     = tabular.NewField("abbr", "abbr", "Abbr", "abbreviation", "Abbreviation", "tag")
	FieldCaptain  = tabular.NewField("captain", "captain", "Captain", "owner", "Owner")

	FieldMatchID   = tabular.NewField("match_id", "match_id", "Match ID", "match", "game_id")
	FieldWeek      = tabular.NewField("week", "week", "Week", "wk")
	FieldStatus    = tabular.NewField("status", "status", "Status", "state")
	FieldDate      = tabular.NewField("scheduled_date", "scheduled_date", "date", "Date", "match_date")
	FieldTime      = tabular.NewField("scheduled_time", "scheduled_time", "time", "Time", "start_time")
	FieldTimezone  = tabular.NewField("timezone", "timezone", "tz", "TZ")
	FieldHomeTeam  = tabular.NewField("home_team_id", "home_team_id", "home", "home_team", "team1", "Team 1")
	FieldAwayTeam  = tabular.NewField("away_team_id", "away_team_id", "away", "away_team", "team2", "Team 2")
	FieldHomeScore = tabular.NewField("home_score", "home_score", "home_goals", "HomeScore")
	FieldAwayScore = tabular.NewField("away_score", "away_score", "away_goals", "AwayScore")
	FieldSeries    = tabular.NewField("series_score", "series_score", "Series Score", "series result")
	FieldSeriesID  = tabular.NewField("series_id", "series_id", "series")

	FieldRank         = tabular.NewField("rank", "rank", "#", "pos", "position", "Position")
	FieldWins         = tabular.NewField("wins", "W", "w", "wins", "Wins", "win")
	FieldLosses       = tabular.NewField("losses", "L", "l", "losses", "Losses", "loss")
	FieldGamesPlayed  = tabular.NewField("games_played", "GP", "gp", "games", "Games", "played", "Played")
	FieldGoalDiff     = tabular.NewField("goal_diff", "GD", "gd", "goal diff", "Goal Diff", "goal_diff", "goaldiff")
	FieldGoalsFor     = tabular.NewField("goals_for", "GF", "gf", "goals for", "Goals For", "goals_for")
	FieldGoalsAgainst = tabular.NewField("goals_against", "GA", "ga", "goals against", "Goals Against", "goals_against")
	FieldPoints       = tabular.NewField("points", "PTS", "pts", "points", "Points")

	FieldPlayerID   = tabular.NewField("player_id", "player_id", "Player", "player", "player_name", "gamertag")
	FieldPlayerTeam = tabular.NewField("player_team", "team_id", "Team", "team", "team_name")
	FieldPlayerGP   = tabular.NewField("player_gp", "GP", "gp", "games", "games_played")
	FieldScore      = tabular.NewField("score", "score", "Score", "points", "pts")
	FieldGoals      = tabular.NewField("goals", "goals", "Goals", "G")
	FieldAssists    = tabular.NewField("assists", "assists", "Assists", "A", "ast")
	FieldSaves      = tabular.NewField("saves", "saves", "Saves", "sv")
	FieldShots      = tabular.NewField("shots", "shots", "Shots", "sh")
	FieldPing       = tabular.NewField("ping", "ping", "Ping", "avg_ping")
)
