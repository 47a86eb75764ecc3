package league

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/rlol/internal/tabular"
)

// MatchDefaults fills meta fields the schedule sheet leaves blank.
type MatchDefaults struct {
	Time     string
	Timezone string
}

// DefaultMatchDefaults is the league's usual stream start.
var DefaultMatchDefaults = MatchDefaults{Time: "18:00", Timezone: "EST"}

// Match is one fixture from the schedule sheet with teams resolved.
type Match struct {
	ID         string         `json:"match_id"`
	Week       string         `json:"week"`
	WeekNumber int            `json:"week_number"`
	Date       time.Time      `json:"-"`
	DateKey    string         `json:"date,omitempty"`
	Time       string         `json:"time"`
	Timezone   string         `json:"timezone"`
	Home       Team           `json:"home"`
	Away       Team           `json:"away"`
	HomeScore  string         `json:"home_score,omitempty"`
	AwayScore  string         `json:"away_score,omitempty"`
	Series     string         `json:"series_score,omitempty"`
	SeriesID   string         `json:"series_id,omitempty"`
	Status     tabular.Status `json:"status"`
	RawStatus  string         `json:"raw_status,omitempty"`
}

// BuildSchedule resolves schedule rows against the team map and orders
// them by week number, then match id.
func BuildSchedule(rows []tabular.Row, teams TeamMap, defaults MatchDefaults) []Match {
	if defaults.Time == "" {
		defaults.Time = DefaultMatchDefaults.Time
	}
	if defaults.Timezone == "" {
		defaults.Timezone = DefaultMatchDefaults.Timezone
	}

	matches := make([]Match, 0, len(rows))
	for _, row := range rows {
		week := FieldWeek.String(row, "")
		date := ParseDate(FieldDate.String(row, ""))
		rawStatus := FieldStatus.String(row, "")

		matches = append(matches, Match{
			ID:         FieldMatchID.String(row, ""),
			Week:       week,
			WeekNumber: WeekNumber(week),
			Date:       date,
			DateKey:    DateKey(date),
			Time:       FieldTime.String(row, defaults.Time),
			Timezone:   FieldTimezone.String(row, defaults.Timezone),
			Home:       teams.Resolve(FieldHomeTeam.String(row, "")),
			Away:       teams.Resolve(FieldAwayTeam.String(row, "")),
			HomeScore:  FieldHomeScore.String(row, ""),
			AwayScore:  FieldAwayScore.String(row, ""),
			Series:     FieldSeries.String(row, ""),
			SeriesID:   FieldSeriesID.String(row, ""),
			Status:     tabular.ClassifyStatus(rawStatus),
			RawStatus:  rawStatus,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].WeekNumber != matches[j].WeekNumber {
			return matches[i].WeekNumber < matches[j].WeekNumber
		}
		return matches[i].ID < matches[j].ID
	})

	return matches
}

// WeekNumber extracts the digits of a week label ("Week 3" -> 3).
// Labels without digits are week 0.
func WeekNumber(label string) int {
	var digits strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// GoalsText renders the goal line, "h–a", or "—" when no score is entered.
func (m Match) GoalsText() string {
	if m.HomeScore == "" && m.AwayScore == "" {
		return "—"
	}
	hs, as := m.HomeScore, m.AwayScore
	if hs == "" {
		hs = "0"
	}
	if as == "" {
		as = "0"
	}
	return hs + "–" + as
}

// SeriesText renders the series score or "—".
func (m Match) SeriesText() string {
	if m.Series == "" {
		return "—"
	}
	return m.Series
}

// Title returns "Home vs Away".
func (m Match) Title() string {
	return m.Home.Label() + " vs " + m.Away.Label()
}

// IsOn reports whether the match is dated on the given day.
func (m Match) IsOn(day time.Time) bool {
	return m.DateKey != "" && m.DateKey == DateKey(Day(day))
}

// SearchText is the lower-cased text a free-text query is matched against.
func (m Match) SearchText() string {
	parts := []string{
		m.Home.Label(), m.Away.Label(), m.Home.ID, m.Away.ID,
		m.Home.Abbr, m.Away.Abbr, m.ID, m.Week,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// SortByDate orders matches by date (undated last), then match id.
func SortByDate(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.DateKey != b.DateKey {
			if a.DateKey == "" || b.DateKey == "" {
				return b.DateKey == ""
			}
			return a.DateKey < b.DateKey
		}
		return a.ID < b.ID
	})
}

// WeekGroup is one week card on the schedule page.
type WeekGroup struct {
	Week     int       `json:"week"`
	Label    string    `json:"label"`
	Date     time.Time `json:"-"`
	DateKey  string    `json:"date,omitempty"`
	Time     string    `json:"time"`
	Timezone string    `json:"timezone"`
	Matches  []Match   `json:"matches"`
}

// Heading returns the week card's meta line.
func (g WeekGroup) Heading() string {
	if g.DateKey == "" {
		return "Date TBD"
	}
	return fmt.Sprintf("%s • Stream starts %s %s", PrettyDate(g.Date), g.Time, g.Timezone)
}

// IsTonight reports whether the week is played on day.
func (g WeekGroup) IsTonight(day time.Time) bool {
	return g.DateKey != "" && g.DateKey == DateKey(Day(day))
}

// GroupByWeek buckets matches by week number. Groups are ordered by week
// and take their date and stream time from their first match.
func GroupByWeek(matches []Match) []WeekGroup {
	index := make(map[int]int)
	var groups []WeekGroup
	for _, m := range matches {
		i, ok := index[m.WeekNumber]
		if !ok {
			i = len(groups)
			index[m.WeekNumber] = i
			groups = append(groups, WeekGroup{Week: m.WeekNumber})
		}
		groups[i].Matches = append(groups[i].Matches, m)
	}

	for i := range groups {
		g := &groups[i]
		sort.SliceStable(g.Matches, func(a, b int) bool {
			return g.Matches[a].ID < g.Matches[b].ID
		})
		first := g.Matches[0]
		g.Label = fmt.Sprintf("Week %d", g.Week)
		g.Date = first.Date
		g.DateKey = first.DateKey
		g.Time = first.Time
		g.Timezone = first.Timezone
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Week < groups[j].Week
	})
	return groups
}

// Weeks returns the distinct non-empty week labels ordered by their digits.
func Weeks(matches []Match) []string {
	seen := make(map[string]bool)
	var weeks []string
	for _, m := range matches {
		if m.Week == "" || seen[m.Week] {
			continue
		}
		seen[m.Week] = true
		weeks = append(weeks, m.Week)
	}
	sort.SliceStable(weeks, func(i, j int) bool {
		return WeekNumber(weeks[i]) < WeekNumber(weeks[j])
	})
	return weeks
}

// ScheduleFilter narrows a schedule. Zero fields match everything.
type ScheduleFilter struct {
	Status string    // a tabular.Status, or "all"
	Week   string    // exact week label, or "all"
	Query  string    // case-insensitive substring of Match.SearchText
	From   time.Time // inclusive
	To     time.Time // inclusive
}

// IsEmpty returns true if the filter matches every match.
func (f ScheduleFilter) IsEmpty() bool {
	return isAll(f.Status) && isAll(f.Week) && strings.TrimSpace(f.Query) == "" &&
		f.From.IsZero() && f.To.IsZero()
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}

// Matches reports whether m passes every criterion.
func (f ScheduleFilter) Matches(m Match) bool {
	if !isAll(f.Status) && m.Status != tabular.ClassifyStatus(f.Status) {
		return false
	}
	if !isAll(f.Week) && m.Week != strings.TrimSpace(f.Week) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(m.SearchText(), q) {
			return false
		}
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		if m.Date.IsZero() {
			return false
		}
		if !f.From.IsZero() && m.Date.Before(Day(f.From)) {
			return false
		}
		if !f.To.IsZero() && m.Date.After(Day(f.To)) {
			return false
		}
	}
	return true
}

// Apply returns the matches that pass the filter, preserving order.
func (f ScheduleFilter) Apply(matches []Match) []Match {
	if f.IsEmpty() {
		return matches
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

// ScheduleCounts summarises a schedule for the counts line.
type ScheduleCounts struct {
	Shown     int `json:"shown"`
	Scheduled int `json:"scheduled"`
	Played    int `json:"played"`
	Live      int `json:"live"`
	Total     int `json:"total"`
}

// CountMatches counts statuses over the whole schedule and the shown subset.
func CountMatches(all, shown []Match) ScheduleCounts {
	c := ScheduleCounts{Shown: len(shown), Total: len(all)}
	for _, m := range all {
		switch m.Status {
		case tabular.StatusScheduled:
			c.Scheduled++
		case tabular.StatusPlayed:
			c.Played++
		case tabular.StatusLive:
			c.Live++
		}
	}
	return c
}

func (c ScheduleCounts) String() string {
	return fmt.Sprintf("Matches: %d shown • %d scheduled • %d played • %d total",
		c.Shown, c.Scheduled, c.Played, c.Total)
}

// LiveText is the status pill: live matches if any, otherwise the total.
func (c ScheduleCounts) LiveText() string {
	switch {
	case c.Live == 1:
		return "1 match live now"
	case c.Live > 1:
		return fmt.Sprintf("%d matches live now", c.Live)
	}
	return fmt.Sprintf("%d total matches", c.Total)
}

// MatchNight is every match on a single date.
type MatchNight struct {
	Date     time.Time `json:"-"`
	DateKey  string    `json:"date"`
	Time     string    `json:"time"`
	Timezone string    `json:"timezone"`
	Matches  []Match   `json:"matches"`
}

// Heading returns the hub's next-night meta line.
func (n MatchNight) Heading() string {
	return fmt.Sprintf("Next Match Night: %s • stream starts %s %s", PrettyDate(n.Date), n.Time, n.Timezone)
}

// NextMatchNight finds the earliest date on or after today with a match
// that is neither played nor cancelled. If every remaining match is
// settled, the earliest date on or after today is used instead.
func NextMatchNight(matches []Match, today time.Time) (*MatchNight, bool) {
	todayKey := DateKey(Day(today))

	earliest := func(upcomingOnly bool) string {
		best := ""
		for _, m := range matches {
			if m.DateKey == "" || m.DateKey < todayKey {
				continue
			}
			if upcomingOnly && (m.Status == tabular.StatusPlayed || m.Status == tabular.StatusCancelled) {
				continue
			}
			if best == "" || m.DateKey < best {
				best = m.DateKey
			}
		}
		return best
	}

	key := earliest(true)
	if key == "" {
		key = earliest(false)
	}
	if key == "" {
		return nil, false
	}

	night := &MatchNight{DateKey: key}
	for _, m := range matches {
		if m.DateKey == key {
			night.Matches = append(night.Matches, m)
		}
	}
	sort.SliceStable(night.Matches, func(i, j int) bool {
		return night.Matches[i].ID < night.Matches[j].ID
	})

	first := night.Matches[0]
	night.Date = first.Date
	night.Time = first.Time
	night.Timezone = first.Timezone
	return night, true
}
