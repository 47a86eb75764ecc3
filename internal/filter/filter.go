package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

// Options holds raw filter input from flags or query parameters.
type Options struct {
	Status string
	Week   string
	Query  string
	Dates  string
}

var statusChoices = []tabular.Status{
	tabular.StatusScheduled,
	tabular.StatusLive,
	tabular.StatusPlayed,
	tabular.StatusPostponed,
	tabular.StatusCancelled,
}

// StatusChoices returns "all" followed by every known match status.
func StatusChoices() []string {
	out := []string{"all"}
	for _, s := range statusChoices {
		out = append(out, string(s))
	}
	return out
}

// Schedule validates opts and builds a schedule filter. Date ranges are
// read relative to now.
func Schedule(opts Options, now time.Time) (league.ScheduleFilter, error) {
	f := league.ScheduleFilter{
		Week:  strings.TrimSpace(opts.Week),
		Query: strings.TrimSpace(opts.Query),
	}

	if status := strings.ToLower(strings.TrimSpace(opts.Status)); status != "" && status != "all" {
		s := tabular.ClassifyStatus(status)
		if !s.Known() {
			return league.ScheduleFilter{}, fmt.Errorf("invalid status %q: must be one of %s",
				opts.Status, strings.Join(StatusChoices(), ", "))
		}
		f.Status = string(s)
	}

	if strings.TrimSpace(opts.Dates) != "" {
		r, err := ParseDateRange(opts.Dates, now)
		if err != nil {
			return league.ScheduleFilter{}, err
		}
		f.From, f.To = r.From, r.To
	}

	return f, nil
}

// Describe returns a human-readable summary of the active filters.
func Describe(f league.ScheduleFilter) string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.Status != "" && f.Status != "all" {
		parts = append(parts, "Status: "+f.Status)
	}
	if f.Week != "" && !strings.EqualFold(f.Week, "all") {
		parts = append(parts, "Week: "+f.Week)
	}
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", f.Query))
	}
	switch {
	case !f.From.IsZero() && !f.To.IsZero():
		parts = append(parts, "Dates: "+Range{From: f.From, To: f.To}.String())
	case !f.From.IsZero():
		parts = append(parts, "From: "+f.From.Format("Jan 2, 2006"))
	case !f.To.IsZero():
		parts = append(parts, "To: "+f.To.Format("Jan 2, 2006"))
	}
	return strings.Join(parts, " | ")
}
