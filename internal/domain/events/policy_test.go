package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCanViewEvent(t *testing.T) {
	organizer := uuid.New()
	stranger := uuid.New()

	public := &Event{ID: uuid.New(), OrganizerID: organizer, IsPublic: true}
	private := &Event{ID: uuid.New(), OrganizerID: organizer, IsPublic: false}

	cases := []struct {
		name    string
		actor   *Actor
		event   *Event
		invited bool
		want    bool
	}{
		{"public anonymous", nil, public, false, true},
		{"public stranger", &Actor{ID: stranger}, public, false, true},
		{"private anonymous", nil, private, false, false},
		{"private stranger", &Actor{ID: stranger}, private, false, false},
		{"private organizer", &Actor{ID: organizer}, private, false, true},
		{"private invited", &Actor{ID: stranger}, private, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CanViewEvent(tc.actor, tc.event, tc.invited))
		})
	}
}

func TestCanEditEvent(t *testing.T) {
	organizer := uuid.New()
	event := &Event{ID: uuid.New(), OrganizerID: organizer}

	require.True(t, CanEditEvent(Actor{ID: organizer}, event))
	require.False(t, CanEditEvent(Actor{ID: uuid.New()}, event))
}

func TestCanEditRSVP(t *testing.T) {
	organizer := uuid.New()
	owner := uuid.New()
	event := &Event{ID: uuid.New(), OrganizerID: organizer}
	rsvp := &RSVP{EventID: event.ID, UserID: owner}

	require.True(t, CanEditRSVP(Actor{ID: owner}, rsvp, event))
	require.True(t, CanEditRSVP(Actor{ID: organizer}, rsvp, event))
	require.False(t, CanEditRSVP(Actor{ID: uuid.New()}, rsvp, event))
}

func TestCanInvite(t *testing.T) {
	organizer := uuid.New()
	event := &Event{ID: uuid.New(), OrganizerID: organizer}

	require.True(t, CanInvite(Actor{ID: organizer}, event))
	require.False(t, CanInvite(Actor{ID: uuid.New()}, event))
}

func TestStatusValid(t *testing.T) {
	require.True(t, StatusGoing.Valid())
	require.True(t, StatusMaybe.Valid())
	require.True(t, StatusNotGoing.Valid())
	require.False(t, Status("going").Valid())
	require.False(t, Status("").Valid())
}
