package events

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersDefaults(t *testing.T) {
	filters, err := ParseFilters(url.Values{})

	require.NoError(t, err)
	require.Empty(t, filters.Location)
	require.Empty(t, filters.Search)
	require.Nil(t, filters.OrganizerID)
}

func TestParseFiltersTrimsFields(t *testing.T) {
	values := url.Values{}
	values.Set("location", "  Portland  ")
	values.Set("search", "  jazz night ")

	filters, err := ParseFilters(values)

	require.NoError(t, err)
	require.Equal(t, "Portland", filters.Location)
	require.Equal(t, "jazz night", filters.Search)
}

func TestParseFiltersOrganizer(t *testing.T) {
	organizer := uuid.New()
	values := url.Values{}
	values.Set("organizer", organizer.String())

	filters, err := ParseFilters(values)

	require.NoError(t, err)
	require.NotNil(t, filters.OrganizerID)
	require.Equal(t, organizer, *filters.OrganizerID)
}

func TestParseFiltersOrganizerValidation(t *testing.T) {
	values := url.Values{}
	values.Set("organizer", "not-a-uuid")

	_, err := ParseFilters(values)

	var fieldErr FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "organizer", fieldErr.Field)
}
