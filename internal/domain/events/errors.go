package events

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("event not found")
	ErrRSVPNotFound        = errors.New("rsvp not found")
	ErrInviteeNotFound     = errors.New("invitee not found")
	ErrForbidden           = errors.New("forbidden")
	ErrDuplicateRSVP       = errors.New("rsvp already exists for this event and user")
	ErrDuplicateInvitation = errors.New("user already invited")
)

// FieldError reports a validation failure for a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
