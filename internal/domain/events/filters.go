package events

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

type Filters struct {
	Location    string
	OrganizerID *uuid.UUID
	Search      string
}

// ParseFilters reads list filters from query parameters: exact-match
// location, organizer user id, and free-text search over title and
// description.
func ParseFilters(values url.Values) (Filters, error) {
	filters := Filters{
		Location: strings.TrimSpace(values.Get("location")),
		Search:   strings.TrimSpace(values.Get("search")),
	}

	organizer := strings.TrimSpace(values.Get("organizer"))
	if organizer != "" {
		id, err := uuid.Parse(organizer)
		if err != nil {
			return Filters{}, FieldError{Field: "organizer", Message: "must be a user id"}
		}
		filters.OrganizerID = &id
	}

	return filters, nil
}
