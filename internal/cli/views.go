package cli

import (
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/rlol/internal/filter"
	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/site"
)

func newScheduleCmd(flags *rootFlags) *cobra.Command {
	var (
		opts   filter.Options
		byDate bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the schedule grouped by week",
		Long: `Show the schedule grouped by week.

Date ranges accept "Mar 1-15", "March 28 - April 4", "March", "today",
"this week" or ISO dates such as "2026-01-24..2026-02-07".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			f, err := filter.Schedule(opts, rt.cfg.League.Today(rt.now()))
			if err != nil {
				return err
			}
			data, err := rt.load(cmd.Context(), []site.Page{site.PageSchedule})
			if err != nil {
				return err
			}

			shown := f.Apply(data.Schedule)
			result := &ScheduleResult{
				Filter:  filter.Describe(f),
				Counts:  league.CountMatches(data.Schedule, shown),
				ByDate:  byDate,
				Today:   data.Today,
				Matches: shown,
			}
			if byDate {
				league.SortByDate(result.Matches)
			} else {
				result.Weeks = league.GroupByWeek(shown)
			}
			return writeSchedule(rt.out, result, rt.format)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "all", "Status: all, scheduled, live, played, postponed or cancelled")
	cmd.Flags().StringVar(&opts.Week, "week", "all", "Week label, e.g. \"Week 2\"")
	cmd.Flags().StringVar(&opts.Query, "search", "", "Match id or team name contains")
	cmd.Flags().StringVar(&opts.Dates, "dates", "", "Date range, e.g. \"Mar 1-15\"")
	cmd.Flags().BoolVar(&byDate, "by-date", false, "List matches by date instead of grouping by week")

	return cmd
}

func newStandingsCmd(flags *rootFlags) *cobra.Command {
	var (
		sortKey  string
		dir      string
		query    string
		snapshot bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Show the standings table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			key, d, err := standingsOrder(sortKey, dir)
			if err != nil {
				return err
			}
			view := league.StandingsView{Key: key, Dir: d, Query: query, Limit: limit}

			var rows []league.Standing
			if snapshot {
				data, err := rt.load(cmd.Context(), []site.Page{site.PageHub})
				if err != nil {
					return err
				}
				rows = data.Hub.Top
			} else {
				data, err := rt.load(cmd.Context(), []site.Page{site.PageStandings})
				if err != nil {
					return err
				}
				rows = data.Standings
			}
			return writeStandings(rt.out, view.Apply(rows), rt.format)
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "rank", "Sort column: rank, team, w, l, gp, gd, gf, ga or pts")
	cmd.Flags().StringVar(&dir, "dir", "", "Sort direction: asc or desc (default depends on column)")
	cmd.Flags().StringVar(&query, "search", "", "Team name, abbreviation or id contains")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Show the hub snapshot (top teams from the standings view)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many teams (0 for all)")

	return cmd
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	var (
		from    string
		sortKey string
		dir     string
		team    string
		query   string
		top     bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show player stats and leaders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			src, err := site.ParseStatsSource(from)
			if err != nil {
				return err
			}
			key, d, err := statsOrder(sortKey, dir)
			if err != nil {
				return err
			}
			data, err := rt.load(cmd.Context(), []site.Page{site.PageStats}, site.WithStatsSource(src))
			if err != nil {
				return err
			}

			view := league.StatsView{Key: key, Dir: d, Query: query, Team: team, TopOnly: top}
			result := &StatsResult{
				Source:  string(src),
				Sort:    key,
				Players: view.Apply(data.Stats),
			}
			for _, m := range league.Leaders {
				if line, ok := league.Leader(data.Stats, m.Key); ok {
					result.Leaders = append(result.Leaders, LeaderResult{
						Label:  m.Label,
						Player: line.Player,
						Team:   line.Team,
						Value:  line.Value(m.Key),
					})
				}
			}
			return writeStats(rt.out, result, rt.format)
		},
	}

	cmd.Flags().StringVar(&from, "source", "game", "Stats sheet: game (aggregate per-game rows) or season")
	cmd.Flags().StringVar(&sortKey, "sort", "Score", "Sort column: Player, Team, GP, Score, Goals, Assists, Saves, Shots or Ping")
	cmd.Flags().StringVar(&dir, "dir", "", "Sort direction: asc or desc (default depends on column)")
	cmd.Flags().StringVar(&team, "team", "", "Only players on this team")
	cmd.Flags().StringVar(&query, "search", "", "Player or team name contains")
	cmd.Flags().BoolVar(&top, "top", false, "Only the top 10 rows")

	return cmd
}
