// Package filter turns raw schedule filter inputs into league filters.
//
// The same inputs arrive from CLI flags and from the preview server's
// query string: a status, a week label, a free-text search and a date
// range such as "Mar 1-15" or "2026-01-24..2026-02-07".
//
// Example usage:
//
//	f, err := filter.Schedule(filter.Options{Status: "played", Dates: "Jan"}, time.Now())
//	shown := f.Apply(matches)
package filter
