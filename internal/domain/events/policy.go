package events

import "github.com/google/uuid"

// Actor is the authenticated caller of an operation. A nil *Actor means
// the request is anonymous.
type Actor struct {
	ID       uuid.UUID
	Username string
}

// CanViewEvent decides read visibility of an event. Public events are
// visible to anyone. Private events are visible to their organizer and to
// any user holding an invitation row, regardless of the invitation's
// accepted flag or expiry.
func CanViewEvent(actor *Actor, event *Event, invited bool) bool {
	if event.IsPublic {
		return true
	}
	if actor == nil {
		return false
	}
	if actor.ID == event.OrganizerID {
		return true
	}
	return invited
}

// CanEditEvent decides update/delete rights on the event record itself.
func CanEditEvent(actor Actor, event *Event) bool {
	return actor.ID == event.OrganizerID
}

// CanEditRSVP decides mutation rights on an RSVP: its owning user or the
// event's organizer.
func CanEditRSVP(actor Actor, rsvp *RSVP, event *Event) bool {
	return actor.ID == rsvp.UserID || actor.ID == event.OrganizerID
}

// CanInvite decides invite-issuance rights: organizer only.
func CanInvite(actor Actor, event *Event) bool {
	return actor.ID == event.OrganizerID
}
