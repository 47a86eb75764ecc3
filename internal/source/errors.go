package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrBodyTooLarge is returned when a response exceeds the body limit.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	// Title is the error page's <title>, if the body was HTML.
	Title string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
	if e.Title != "" {
		msg += fmt.Sprintf(" (%s)", e.Title)
	}
	return msg
}

// pageTitle extracts the <title> of an HTML body, or "".
func pageTitle(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
