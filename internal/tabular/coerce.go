package tabular

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber parses a loosely formatted number such as "1,234", "$5.50" or
// " 7 ". Everything except digits, '.' and '-' is dropped first. Empty or
// unparsable input yields fallback.
func ToNumber(raw string, fallback float64) float64 {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			b.WriteByte(c)
		}
	}
	s := b.String()
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// Status is a normalized match status.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusPlayed    Status = "played"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

// Known reports whether s is one of the recognized buckets.
func (s Status) Known() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusPlayed, StatusPostponed, StatusCancelled:
		return true
	}
	return false
}

// ClassifyStatus maps a free-form status cell onto a bucket by substring.
// Unrecognized text comes back trimmed and lower-cased.
func ClassifyStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "cancel"):
		return StatusCancelled
	case strings.Contains(s, "postpon"):
		return StatusPostponed
	case strings.Contains(s, "live"):
		return StatusLive
	case strings.Contains(s, "played"), strings.Contains(s, "final"), strings.Contains(s, "complete"):
		return StatusPlayed
	case strings.Contains(s, "schedul"), strings.Contains(s, "upcoming"):
		return StatusScheduled
	}
	return Status(s)
}
