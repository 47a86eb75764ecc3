package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pfrederiksen/rlol/internal/league"
	"github.com/pfrederiksen/rlol/internal/tabular"
)

// DefaultDuration is how long a match night is blocked out.
const DefaultDuration = 2 * time.Hour

// Options controls the feed-level properties.
type Options struct {
	Name     string        // X-WR-CALNAME
	Domain   string        // UID suffix
	URL      string        // link attached to every event
	Duration time.Duration // zero means DefaultDuration
	Now      time.Time     // DTSTAMP; zero means time.Now
	// Location places matches whose zone label is unknown; nil means UTC.
	Location *time.Location
}

// zones maps the short zone labels used in the sheet to locations.
var zones = map[string]string{
	"ET":  "America/New_York",
	"EST": "America/New_York",
	"EDT": "America/New_York",
	"CT":  "America/Chicago",
	"CST": "America/Chicago",
	"CDT": "America/Chicago",
	"MT":  "America/Denver",
	"MST": "America/Denver",
	"MDT": "America/Denver",
	"PT":  "America/Los_Angeles",
	"PST": "America/Los_Angeles",
	"PDT": "America/Los_Angeles",
	"UTC": "UTC",
	"GMT": "UTC",
}

// Location resolves a timezone label ("EST", "America/New_York").
// Unknown labels return nil.
func Location(label string) *time.Location {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	if name, ok := zones[strings.ToUpper(label)]; ok {
		label = name
	}
	loc, err := time.LoadLocation(label)
	if err != nil {
		return nil
	}
	return loc
}

var clockRe = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*([ap]\.?m\.?)?$`)

// ParseClock parses "18:00", "6:00 PM", "6pm" into hour and minute.
func ParseClock(s string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if suffix := strings.ToLower(strings.ReplaceAll(m[3], ".", "")); suffix != "" {
		if hour < 1 || hour > 12 {
			return 0, 0, false
		}
		if hour == 12 {
			hour = 0
		}
		if suffix == "pm" {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// Start returns when a match begins. The second result is false for
// undated matches. Unparseable times fall back to the league default and
// unknown zone labels are read in fallback (UTC when nil).
func Start(m league.Match, fallback *time.Location) (time.Time, bool) {
	if m.Date.IsZero() {
		return time.Time{}, false
	}
	hour, minute, ok := ParseClock(m.Time)
	if !ok {
		hour, minute, _ = ParseClock(league.DefaultMatchDefaults.Time)
	}
	loc := Location(m.Timezone)
	if loc == nil {
		loc = fallback
	}
	if loc == nil {
		loc = time.UTC
	}
	y, mo, d := m.Date.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, loc), true
}

// GenerateICS generates an iCalendar feed with one event per dated match.
func GenerateICS(matches []league.Match, opts Options) string {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Domain == "" {
		opts.Domain = "rlol.local"
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//RLOL//rlol//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if opts.Name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(opts.Name)))
	}

	for i, m := range matches {
		start, ok := Start(m, opts.Location)
		if !ok {
			continue
		}
		writeEvent(&ics, m, i, start, opts)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, m league.Match, index int, start time.Time, opts Options) {
	id := m.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", m.DateKey, index+1)
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", escapeICS(id), opts.Domain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(opts.Now)))
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(opts.Duration))))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(m.Title())))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(describe(m))))
	if opts.URL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", opts.URL))
	}
	ics.WriteString(fmt.Sprintf("STATUS:%s\r\n", eventStatus(m.Status)))
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

func describe(m league.Match) string {
	var lines []string
	if m.Week != "" {
		lines = append(lines, m.Week)
	}
	if m.Status != "" {
		lines = append(lines, "Status: "+string(m.Status))
	}
	if m.HomeScore != "" || m.AwayScore != "" {
		lines = append(lines, "Goals: "+m.GoalsText())
	}
	if m.Series != "" {
		lines = append(lines, "Series: "+m.Series)
	}
	lines = append(lines, fmt.Sprintf("Stream starts %s %s", m.Time, m.Timezone))
	return strings.Join(lines, "\n")
}

func eventStatus(s tabular.Status) string {
	switch s {
	case tabular.StatusCancelled:
		return "CANCELLED"
	case tabular.StatusPostponed:
		return "TENTATIVE"
	}
	return "CONFIRMED"
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
