package league

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/rlol/internal/tabular"
)

// unranked is the sentinel rank of a row without a rank cell.
const unranked = 999

// Standing is one team's line in the standings table.
type Standing struct {
	Rank   int     `json:"rank"`
	Ranked bool    `json:"-"`
	TeamID string  `json:"team_id"`
	Team   string  `json:"team"`
	Abbr   string  `json:"abbr,omitempty"`
	Logo   string  `json:"logo,omitempty"`
	W      float64 `json:"w"`
	L      float64 `json:"l"`
	GP     float64 `json:"gp"`
	GD     float64 `json:"gd"`
	GF     float64 `json:"gf"`
	GA     float64 `json:"ga"`
	PTS    float64 `json:"pts"`
}

// Record returns "W-L".
func (s Standing) Record() string {
	return FormatNumber(s.W) + "-" + FormatNumber(s.L)
}

// RankText returns the rank, or "" for an unranked row.
func (s Standing) RankText() string {
	if !s.Ranked {
		return ""
	}
	return strconv.Itoa(s.Rank)
}

// Label returns the best display name for the row.
func (s Standing) Label() string {
	switch {
	case s.Team != "":
		return s.Team
	case s.Abbr != "":
		return s.Abbr
	case s.TeamID != "":
		return s.TeamID
	}
	return "TBD"
}

// FormatNumber prints a stat without a trailing ".0".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RankPolicy decides the order of a standings sheet without a rank column.
type RankPolicy string

const (
	// PolicyWins orders by wins, goal difference, goals for, then name.
	PolicyWins RankPolicy = "wins"
	// PolicyPoints orders by points, wins, goal difference, then name.
	PolicyPoints RankPolicy = "points"
	// PolicySheet keeps the sheet's row order.
	PolicySheet RankPolicy = "sheet"
)

// ParseRankPolicy parses a policy name; "" means PolicyWins.
func ParseRankPolicy(s string) (RankPolicy, error) {
	switch p := RankPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyWins, nil
	case PolicyWins, PolicyPoints, PolicySheet:
		return p, nil
	}
	return "", fmt.Errorf("invalid rank policy %q: must be wins, points, or sheet", s)
}

func (p RankPolicy) less(a, b Standing) bool {
	switch p {
	case PolicySheet:
		return false
	case PolicyPoints:
		if a.PTS != b.PTS {
			return a.PTS > b.PTS
		}
		if a.W != b.W {
			return a.W > b.W
		}
		if a.GD != b.GD {
			return a.GD > b.GD
		}
	default:
		if a.W != b.W {
			return a.W > b.W
		}
		if a.GD != b.GD {
			return a.GD > b.GD
		}
		if a.GF != b.GF {
			return a.GF > b.GF
		}
	}
	return strings.ToLower(a.Label()) < strings.ToLower(b.Label())
}

// Rank orders standings by policy and numbers them from 1.
func Rank(standings []Standing, policy RankPolicy) {
	sort.SliceStable(standings, func(i, j int) bool {
		return policy.less(standings[i], standings[j])
	})
	for i := range standings {
		standings[i].Rank = i + 1
		standings[i].Ranked = true
	}
}

// BuildStandings reads a standings sheet. Names and logos from the teams
// sheet win over the standings sheet's own. When no row carries a rank the
// rows are ranked by policy.
func BuildStandings(rows []tabular.Row, teams TeamMap, policy RankPolicy) []Standing {
	standings := make([]Standing, 0, len(rows))
	anyRanked := false

	for _, row := range rows {
		id := FieldTeamID.String(row, "")
		meta, known := teams.Lookup(id)

		s := Standing{
			TeamID: id,
			Team:   FieldTeamName.String(row, id),
			Abbr:   FieldAbbr.String(row, ""),
			Logo:   FieldLogo.String(row, ""),
			W:      FieldWins.Number(row, 0),
			L:      FieldLosses.Number(row, 0),
			GD:     FieldGoalDiff.Number(row, 0),
			GF:     FieldGoalsFor.Number(row, 0),
			GA:     FieldGoalsAgainst.Number(row, 0),
			PTS:    FieldPoints.Number(row, 0),
		}
		s.GP = FieldGamesPlayed.Number(row, s.W+s.L)

		if known {
			if meta.Name != "" {
				s.Team = meta.Name
			}
			if meta.Logo != "" {
				s.Logo = meta.Logo
			}
			if s.Abbr == "" {
				s.Abbr = meta.Abbr
			}
		}

		s.Rank = int(FieldRank.Number(row, unranked))
		if s.Rank != unranked {
			s.Ranked = true
			anyRanked = true
		}

		standings = append(standings, s)
	}

	if !anyRanked {
		Rank(standings, policy)
	}
	return standings
}

// Snapshot returns the top n rows after ranking a copy by policy.
func Snapshot(standings []Standing, policy RankPolicy, n int) []Standing {
	top := make([]Standing, len(standings))
	copy(top, standings)
	Rank(top, policy)
	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// SortKey is a sortable standings column.
type SortKey string

const (
	SortRank SortKey = "rank"
	SortTeam SortKey = "team"
	SortW    SortKey = "w"
	SortL    SortKey = "l"
	SortGP   SortKey = "gp"
	SortGD   SortKey = "gd"
	SortGF   SortKey = "gf"
	SortGA   SortKey = "ga"
	SortPTS  SortKey = "pts"
)

// SortKeys lists every standings column in table order.
var SortKeys = []SortKey{SortRank, SortTeam, SortW, SortL, SortGP, SortGD, SortGF, SortGA, SortPTS}

// ParseSortKey parses a column name; "" and "record" are accepted
// aliases for rank and wins.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return SortRank, nil
	case "record":
		return SortW, nil
	}
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", s)
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection parses "asc" or "desc"; "" yields def.
func ParseDirection(s string, def Direction) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return def, nil
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("invalid sort direction %q: must be asc or desc", s)
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// DefaultDirection is asc for rank and team, desc for counts.
func DefaultDirection(key SortKey) Direction {
	if key == SortRank || key == SortTeam {
		return Asc
	}
	return Desc
}

func (s Standing) value(key SortKey) float64 {
	switch key {
	case SortW:
		return s.W
	case SortL:
		return s.L
	case SortGP:
		return s.GP
	case SortGD:
		return s.GD
	case SortGF:
		return s.GF
	case SortGA:
		return s.GA
	case SortPTS:
		return s.PTS
	}
	return float64(s.Rank)
}

func compareFloat(a, b float64, dir Direction) int {
	switch {
	case a == b:
		return 0
	case (a < b) == (dir == Asc):
		return -1
	}
	return 1
}

// SortStandings sorts rows in place by key. Ties fall back to goal
// difference desc, goals for desc, then rank asc.
func SortStandings(rows []Standing, key SortKey, dir Direction) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var res int
		if key == SortTeam {
			res = strings.Compare(strings.ToLower(a.Team), strings.ToLower(b.Team))
			if dir == Desc {
				res = -res
			}
		} else {
			res = compareFloat(a.value(key), b.value(key), dir)
		}
		if res == 0 && key != SortGD {
			res = compareFloat(a.GD, b.GD, Desc)
		}
		if res == 0 && key != SortGF {
			res = compareFloat(a.GF, b.GF, Desc)
		}
		if res == 0 {
			res = compareFloat(float64(a.Rank), float64(b.Rank), Asc)
		}
		return res < 0
	})
}

// SearchStandings keeps rows whose team, abbreviation or id contains query.
func SearchStandings(rows []Standing, query string) []Standing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]Standing, 0, len(rows))
	for _, r := range rows {
		hay := strings.ToLower(r.Team + " " + r.Abbr + " " + r.TeamID)
		if strings.Contains(hay, q) {
			out = append(out, r)
		}
	}
	return out
}

// StandingsView is the table state of the standings page.
type StandingsView struct {
	Key   SortKey
	Dir   Direction
	Query string
	Limit int
}

// Apply filters a copy of rows, sorts it and trims it to Limit.
func (v StandingsView) Apply(rows []Standing) []Standing {
	key := v.Key
	if key == "" {
		key = SortRank
	}
	dir := v.Dir
	if dir == "" {
		dir = DefaultDirection(key)
	}

	out := append([]Standing(nil), SearchStandings(rows, v.Query)...)
	SortStandings(out, key, dir)
	if v.Limit > 0 && len(out) > v.Limit {
		out = out[:v.Limit]
	}
	return out
}
