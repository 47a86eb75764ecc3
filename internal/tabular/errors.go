package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotCSV is returned when a document is clearly not CSV, typically an
// HTML error or sign-in page served in place of the export.
var ErrNotCSV = errors.New("document is not CSV")

// NotCSVError describes a rejected document.
type NotCSVError struct {
	// Title is the HTML page title when one could be extracted.
	Title string
	// Snippet is the start of the offending body.
	Snippet string
}

func (e *NotCSVError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("%v: got HTML page %q", ErrNotCSV, e.Title)
	}
	if e.Snippet != "" {
		return fmt.Sprintf("%v: body starts with %q", ErrNotCSV, e.Snippet)
	}
	return ErrNotCSV.Error()
}

func (e *NotCSVError) Unwrap() error {
	return ErrNotCSV
}

const snippetLen = 64

// CheckCSV reports a *NotCSVError when text looks like markup rather than
// delimited data.
func CheckCSV(text string) error {
	body := strings.TrimLeft(strings.TrimPrefix(text, bom), " \t\r\n")
	if !strings.HasPrefix(body, "<") {
		return nil
	}
	snippet := body
	if len(snippet) > snippetLen {
		snippet = snippet[:snippetLen]
	}
	return &NotCSVError{Snippet: snippet}
}
