package league

import (
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006/01/02",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"January 2 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
}

// ParseDate parses a scheduled date cell into a UTC midnight time.
// Timestamps are accepted by their leading ISO date. Returns the zero time
// if the text cannot be parsed.
func ParseDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	// "2026-01-24T19:00:00Z" and "2026-01-24 19:00" share an ISO prefix
	if len(text) > 10 && (text[10] == 'T' || text[10] == ' ') {
		if t, err := time.Parse("2006-01-02", text[:10]); err == nil {
			return t
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}

	return time.Time{}
}

// DateKey formats t as YYYY-MM-DD, or "" for the zero time.
func DateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Day truncates t to its calendar date in t's location, returned as UTC
// midnight so it compares with ParseDate results.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PrettyDate formats a date like "Sat, Jan 24, 2026".
func PrettyDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, Jan 2, 2006")
}
