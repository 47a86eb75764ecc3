package league

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2026, time.January, 24, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "ISO", input: "2026-01-24"},
		{name: "ISO timestamp", input: "2026-01-24T19:00:00Z"},
		{name: "ISO with time", input: "2026-01-24 19:00"},
		{name: "US", input: "1/24/2026"},
		{name: "US padded", input: "01/24/2026"},
		{name: "US short year", input: "1/24/26"},
		{name: "short month", input: "Jan 24 2026"},
		{name: "short month comma", input: "Jan 24, 2026"},
		{name: "long month", input: "January 24, 2026"},
		{name: "weekday", input: "Saturday, January 24, 2026"},
		{name: "surrounding space", input: "  2026-01-24 "},
		{name: "empty", input: "", zero: true},
		{name: "garbage", input: "next week", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.zero {
				if !got.IsZero() {
					t.Errorf("ParseDate(%q) = %v, want zero time", tt.input, got)
				}
				return
			}
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey(time.Time{}); got != "" {
		t.Errorf("DateKey(zero) = %q, want empty", got)
	}
	d := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	if got := DateKey(d); got != "2026-03-07" {
		t.Errorf("DateKey() = %q, want 2026-03-07", got)
	}
	if got := PrettyDate(d); got != "Sat, Mar 7, 2026" {
		t.Errorf("PrettyDate() = %q, want Sat, Mar 7, 2026", got)
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	late := time.Date(2026, time.January, 24, 23, 30, 0, 0, loc)
	if got := DateKey(Day(late)); got != "2026-01-24" {
		t.Errorf("Day() = %q, want the local calendar date 2026-01-24", got)
	}
}
