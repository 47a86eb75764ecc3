package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// ScheduleResult is the schedule command output.
type ScheduleResult struct {
	Filter  string                `json:"filter"`
	Counts  league.ScheduleCounts `json:"counts"`
	ByDate  bool                  `json:"-"`
	Today   time.Time             `json:"-"`
	Weeks   []league.WeekGroup    `json:"weeks,omitempty"`
	Matches []league.Match        `json:"matches"`
}

// StatsResult is the stats command output.
type StatsResult struct {
	Source  string              `json:"source"`
	Sort    league.StatKey      `json:"sort"`
	Leaders []LeaderResult      `json:"leaders"`
	Players []league.PlayerLine `json:"players"`
}

// LeaderResult is one leader card.
type LeaderResult struct {
	Label  string  `json:"label"`
	Player string  `json:"player"`
	Team   string  `json:"team,omitempty"`
	Value  float64 `json:"value"`
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeHub(w io.Writer, hub league.Hub, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, hub)
	}

	if hub.Next == nil {
		fmt.Fprintln(w, "No upcoming match nights.")
	} else {
		fmt.Fprintln(w, hub.Next.Heading())
		for _, m := range hub.Next.Matches {
			fmt.Fprintf(w, "  %s  %s  [%s]\n", m.ID, m.Title(), statusText(m.Status))
		}
	}

	fmt.Fprintln(w)
	if len(hub.Top) == 0 {
		fmt.Fprintln(w, "No standings yet.")
		return nil
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tTEAM\tRECORD\tGD")
	for _, s := range hub.Top {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.RankText(), s.Label(), s.Record(), league.FormatNumber(s.GD))
	}
	return tw.Flush()
}

func writeTeams(w io.Writer, teams []league.Team, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, teams)
	}
	if len(teams) == 0 {
		fmt.Fprintln(w, "No teams found.")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTEAM\tTAG\tCAPTAIN")
	for _, t := range teams {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Label(), dash(t.Abbr), dash(t.Captain))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal: %d teams\n", len(teams))
	return nil
}

func writeSchedule(w io.Writer, result *ScheduleResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	fmt.Fprintln(w, result.Counts.String())
	fmt.Fprintln(w, result.Counts.LiveText())
	fmt.Fprintln(w, result.Filter)

	if len(result.Matches) == 0 {
		fmt.Fprintln(w, "\nNo matches found.")
		return nil
	}

	if result.ByDate {
		fmt.Fprintln(w)
		tw := newTable(w)
		fmt.Fprintln(tw, "DATE\tMATCH\tWEEK\tHOME\tAWAY\tGOALS\tSTATUS")
		for _, m := range result.Matches {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				dash(m.DateKey), m.ID, m.Week, m.Home.Label(), m.Away.Label(), m.GoalsText(), statusText(m.Status))
		}
		return tw.Flush()
	}

	for _, g := range result.Weeks {
		title := g.Label
		if g.IsTonight(result.Today) {
			title += " (tonight)"
		}
		fmt.Fprintf(w, "\n%s: %s\n", title, g.Heading())
		tw := newTable(w)
		for _, m := range g.Matches {
			fmt.Fprintf(tw, "  %s\t%s\tvs\t%s\t%s\t%s\t%s\n",
				m.ID, m.Home.Label(), m.Away.Label(), m.GoalsText(), m.SeriesText(), statusText(m.Status))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func writeStandings(w io.Writer, rows []league.Standing, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No teams found.")
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tTEAM\tW\tL\tGP\tGD\tGF\tGA\tPTS")
	for _, s := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.RankText(), s.Label(),
			league.FormatNumber(s.W), league.FormatNumber(s.L), league.FormatNumber(s.GP),
			league.FormatNumber(s.GD), league.FormatNumber(s.GF), league.FormatNumber(s.GA),
			league.FormatNumber(s.PTS))
	}
	return tw.Flush()
}

func writeStats(w io.Writer, result *StatsResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	for _, l := range result.Leaders {
		fmt.Fprintf(w, "%-10s %s (%s)\n", l.Label, l.Player, league.FormatNumber(l.Value))
	}
	if len(result.Leaders) > 0 {
		fmt.Fprintln(w)
	}

	if len(result.Players) == 0 {
		fmt.Fprintln(w, "No players found.")
		return nil
	}

	tw := newTable(w)
	headers := make([]string, len(league.StatKeys))
	for i, k := range league.StatKeys {
		headers[i] = strings.ToUpper(string(k))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, line := range result.Players {
		cells := make([]string, len(league.StatKeys))
		for i, k := range league.StatKeys {
			cells[i] = dash(line.Text(k))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// writeTable prints a decoded sheet as-is.
func writeTable(w io.Writer, table *tabular.Table, format OutputFormat) error {
	if format == FormatJSON {
		rows := make([]map[string]string, len(table.Rows))
		for i, row := range table.Rows {
			rows[i] = row.Map()
		}
		return writeJSON(w, struct {
			Header []string            `json:"header"`
			Rows   []map[string]string `json:"rows"`
		}{table.Header.Names(), rows})
	}

	names := table.Header.Names()
	tw := newTable(w)
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row.Values(), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nRows: %d\n", table.Len())
	return nil
}

func statusText(s tabular.Status) string {
	if s == "" {
		return "tbd"
	}
	return string(s)
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
