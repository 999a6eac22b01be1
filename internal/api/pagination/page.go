package pagination

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidPage = errors.New("invalid page")

// Page is a validated page-number pagination request.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads the "page" query parameter, defaulting to page 1.
func ParsePage(values url.Values, size int) (Page, error) {
	page := Page{Number: 1, Size: size}

	raw := strings.TrimSpace(values.Get("page"))
	if raw == "" {
		return page, nil
	}
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return Page{}, ErrInvalidPage
	}
	page.Number = number
	return page, nil
}

// Envelope is the paginated list response body.
type Envelope struct {
	Count    int64 `json:"count"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  any   `json:"results"`
}

// NewEnvelope wraps results with next/previous page numbers computed
// from the total row count.
func NewEnvelope(page Page, count int64, results any) Envelope {
	envelope := Envelope{Count: count, Results: results}

	if int64(page.Offset()+page.Size) < count {
		next := page.Number + 1
		envelope.Next = &next
	}
	if page.Number > 1 {
		previous := page.Number - 1
		envelope.Previous = &previous
	}
	return envelope
}
