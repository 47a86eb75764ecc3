package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/rlol/internal/league"
)

// Range is an inclusive span of calendar days.
type Range struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r Range) String() string {
	if r.IsZero() {
		return ""
	}
	if r.From.Equal(r.To) {
		return r.From.Format("Jan 2, 2006")
	}
	return r.From.Format("Jan 2, 2006") + " - " + r.To.Format("Jan 2, 2006")
}

const monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	sameMonthRe  = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRe = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	monthDayRe   = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})$`)
	monthOnlyRe  = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
	isoRangeRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*(?:\.\.|to|-\s)\s*(\d{4}-\d{2}-\d{2})$`)
)

// ParseDateRange parses a date range relative to now.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15"
//   - "March 28 - April 4"
//   - "Mar 7" (a single day)
//   - "March" (the whole month)
//   - "2026-01-24" or "2026-01-24..2026-02-07" (also "to" or " - " between)
//   - "today", "this week" (today through six days ahead)
//
// Month names carry no year; the year placing the start month closest to
// now is used, so a season spanning New Year reads naturally. A range whose
// end month precedes its start month ends in the following year.
func ParseDateRange(input string, now time.Time) (Range, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Range{}, fmt.Errorf("date range cannot be empty")
	}
	today := league.Day(now)

	switch strings.ToLower(input) {
	case "today", "tonight":
		return Range{From: today, To: today}, nil
	case "this week", "week":
		return Range{From: today, To: today.AddDate(0, 0, 6)}, nil
	}

	if m := isoRangeRe.FindStringSubmatch(input); m != nil {
		from, err1 := time.Parse("2006-01-02", m[1])
		to, err2 := time.Parse("2006-01-02", m[2])
		if err1 != nil || err2 != nil {
			return Range{}, fmt.Errorf("invalid date in range %q", input)
		}
		return ordered(from, to)
	}
	if d, err := time.Parse("2006-01-02", input); err == nil {
		return Range{From: d, To: d}, nil
	}

	if m := sameMonthRe.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearNear(month, now)
		from, err := date(year, month, m[2])
		if err != nil {
			return Range{}, err
		}
		to, err := date(year, month, m[3])
		if err != nil {
			return Range{}, err
		}
		return ordered(from, to)
	}

	if m := crossMonthRe.FindStringSubmatch(input); m != nil {
		month1, month2 := parseMonth(m[1]), parseMonth(m[3])
		year1 := yearNear(month1, now)
		year2 := year1
		if month2 < month1 {
			year2++
		}
		from, err := date(year1, month1, m[2])
		if err != nil {
			return Range{}, err
		}
		to, err := date(year2, month2, m[4])
		if err != nil {
			return Range{}, err
		}
		return ordered(from, to)
	}

	if m := monthDayRe.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		d, err := date(yearNear(month, now), month, m[2])
		if err != nil {
			return Range{}, err
		}
		return Range{From: d, To: d}, nil
	}

	if m := monthOnlyRe.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearNear(month, now)
		from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return Range{From: from, To: from.AddDate(0, 1, -1)}, nil
	}

	return Range{}, fmt.Errorf("invalid date range %q: use 'Mar 1-15', 'March 28 - April 4', 'March', or '2026-01-24..2026-02-07'", input)
}

func ordered(from, to time.Time) (Range, error) {
	if from.After(to) {
		return Range{}, fmt.Errorf("start date must not be after end date")
	}
	return Range{From: from, To: to}, nil
}

// date builds a UTC day, rejecting days the month does not have.
func date(year int, month time.Month, dayText string) (time.Time, error) {
	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 {
		return time.Time{}, fmt.Errorf("invalid day: %s", dayText)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month {
		return time.Time{}, fmt.Errorf("invalid day: %s %d", month, day)
	}
	return t, nil
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "sept" {
		return time.September
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m
		}
	}
	return 0
}

// yearNear returns the year that puts month within six months of now.
func yearNear(month time.Month, now time.Time) int {
	year := now.Year()
	diff := int(month) - int(now.Month())
	switch {
	case diff > 6:
		year--
	case diff < -6:
		year++
	}
	return year
}
