package league

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pfrederiksen/rlol/internal/tabular"
)

// PlayerLine is one player's stat line for the season.
type PlayerLine struct {
	Player  string  `json:"player"`
	Team    string  `json:"team"`
	GP      float64 `json:"gp"`
	Score   float64 `json:"score"`
	Goals   float64 `json:"goals"`
	Assists float64 `json:"assists"`
	Saves   float64 `json:"saves"`
	Shots   float64 `json:"shots"`
	Ping    float64 `json:"ping"`
}

// AggregateGameStats folds per-game rows into one line per player, in the
// order players first appear. GP counts rows, counters are summed and
// Ping is the rounded mean. Rows without a player id are skipped.
func AggregateGameStats(rows []tabular.Row) []PlayerLine {
	index := make(map[string]int)
	var lines []PlayerLine
	var pingTotals []float64

	for _, row := range rows {
		player := FieldPlayerID.String(row, "")
		if player == "" {
			continue
		}
		i, ok := index[player]
		if !ok {
			i = len(lines)
			index[player] = i
			lines = append(lines, PlayerLine{Player: player, Team: FieldPlayerTeam.String(row, "")})
			pingTotals = append(pingTotals, 0)
		}

		l := &lines[i]
		l.GP++
		l.Score += FieldScore.Number(row, 0)
		l.Goals += FieldGoals.Number(row, 0)
		l.Assists += FieldAssists.Number(row, 0)
		l.Saves += FieldSaves.Number(row, 0)
		l.Shots += FieldShots.Number(row, 0)
		pingTotals[i] += FieldPing.Number(row, 0)
	}

	for i := range lines {
		lines[i].Ping = math.Floor(pingTotals[i]/lines[i].GP + 0.5)
	}
	return lines
}

// BuildSeasonStats reads an already aggregated season sheet.
func BuildSeasonStats(rows []tabular.Row) []PlayerLine {
	lines := make([]PlayerLine, 0, len(rows))
	for _, row := range rows {
		player := FieldPlayerID.String(row, "")
		if player == "" {
			continue
		}
		lines = append(lines, PlayerLine{
			Player:  player,
			Team:    FieldPlayerTeam.String(row, ""),
			GP:      FieldPlayerGP.Number(row, 0),
			Score:   FieldScore.Number(row, 0),
			Goals:   FieldGoals.Number(row, 0),
			Assists: FieldAssists.Number(row, 0),
			Saves:   FieldSaves.Number(row, 0),
			Shots:   FieldShots.Number(row, 0),
			Ping:    FieldPing.Number(row, 0),
		})
	}
	return lines
}

// StatKey is a column of the stats table.
type StatKey string

const (
	StatPlayer  StatKey = "Player"
	StatTeam    StatKey = "Team"
	StatGP      StatKey = "GP"
	StatScore   StatKey = "Score"
	StatGoals   StatKey = "Goals"
	StatAssists StatKey = "Assists"
	StatSaves   StatKey = "Saves"
	StatShots   StatKey = "Shots"
	StatPing    StatKey = "Ping"
)

// StatKeys lists the stats columns in table order.
var StatKeys = []StatKey{StatPlayer, StatTeam, StatGP, StatScore, StatGoals, StatAssists, StatSaves, StatShots, StatPing}

// ParseStatKey matches a column name case-insensitively; "" is Score.
func ParseStatKey(s string) (StatKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatScore, nil
	}
	for _, k := range StatKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid stat %q", s)
}

// Numeric reports whether the column sorts numerically.
func (k StatKey) Numeric() bool {
	return k != StatPlayer && k != StatTeam
}

// DefaultDirection is asc for text columns, desc for numbers.
func (k StatKey) DefaultDirection() Direction {
	if k.Numeric() {
		return Desc
	}
	return Asc
}

// Value returns the numeric cell for k, or 0 for text columns.
func (l PlayerLine) Value(k StatKey) float64 {
	switch k {
	case StatGP:
		return l.GP
	case StatScore:
		return l.Score
	case StatGoals:
		return l.Goals
	case StatAssists:
		return l.Assists
	case StatSaves:
		return l.Saves
	case StatShots:
		return l.Shots
	case StatPing:
		return l.Ping
	}
	return 0
}

// Text returns the cell for k as display text.
func (l PlayerLine) Text(k StatKey) string {
	switch k {
	case StatPlayer:
		return l.Player
	case StatTeam:
		return l.Team
	}
	return FormatNumber(l.Value(k))
}

// Metric is a leader category.
type Metric struct {
	Key   StatKey `json:"key"`
	Label string  `json:"label"`
}

// Leaders are the categories offered as leader buttons.
var Leaders = []Metric{
	{StatScore, "TOP PTS"},
	{StatGoals, "TOP GOALS"},
	{StatAssists, "TOP AST"},
	{StatSaves, "TOP SAVES"},
	{StatShots, "TOP SHOTS"},
}

// TopLimit is the row count of the "top" stats view.
const TopLimit = 10

// StatsView is the table state of the stats page.
type StatsView struct {
	Key     StatKey
	Dir     Direction
	Query   string
	Team    string
	TopOnly bool
}

// DefaultStatsView sorts by score, highest first.
var DefaultStatsView = StatsView{Key: StatScore, Dir: Desc}

// SortStats sorts lines in place; ties keep their order.
func SortStats(lines []PlayerLine, key StatKey, dir Direction) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if key.Numeric() {
			return compareFloat(a.Value(key), b.Value(key), dir) < 0
		}
		res := strings.Compare(strings.ToLower(a.Text(key)), strings.ToLower(b.Text(key)))
		if dir == Desc {
			res = -res
		}
		return res < 0
	})
}

// Apply sorts a copy of lines, then applies the team filter, the query
// and the top-10 cut in that order.
func (v StatsView) Apply(lines []PlayerLine) []PlayerLine {
	key := v.Key
	if key == "" {
		key = StatScore
	}
	dir := v.Dir
	if dir == "" {
		dir = key.DefaultDirection()
	}

	out := append([]PlayerLine(nil), lines...)
	SortStats(out, key, dir)

	q := strings.ToLower(strings.TrimSpace(v.Query))
	kept := out[:0]
	for _, l := range out {
		if v.Team != "" && l.Team != v.Team {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(l.Player), q) &&
			!strings.Contains(strings.ToLower(l.Team), q) {
			continue
		}
		kept = append(kept, l)
	}

	if v.TopOnly && len(kept) > TopLimit {
		kept = kept[:TopLimit]
	}
	return kept
}

// Leader returns the best line for key, if any.
func Leader(lines []PlayerLine, key StatKey) (PlayerLine, bool) {
	view := StatsView{Key: key, Dir: key.DefaultDirection()}
	sorted := view.Apply(lines)
	if len(sorted) == 0 {
		return PlayerLine{}, false
	}
	return sorted[0], true
}

// StatTeams returns the distinct non-empty teams, sorted.
func StatTeams(lines []PlayerLine) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, l := range lines {
		if l.Team == "" || seen[l.Team] {
			continue
		}
		seen[l.Team] = true
		teams = append(teams, l.Team)
	}
	sort.Strings(teams)
	return teams
}
