package events

// Status is a user's attendance intent for an event.
type Status string

const (
	StatusGoing    Status = "Going"
	StatusMaybe    Status = "Maybe"
	StatusNotGoing Status = "Not Going"
)

func (s Status) Valid() bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	default:
		return false
	}
}
