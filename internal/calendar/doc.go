// Package calendar renders the league schedule as an RFC 5545 iCalendar
// feed so fans can subscribe to match nights.
package calendar
