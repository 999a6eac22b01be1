package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID            uuid.UUID
	Title         string
	Description   string
	OrganizerID   uuid.UUID
	OrganizerName string
	Location      string
	StartTime     time.Time
	EndTime       time.Time
	IsPublic      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type RSVP struct {
	ID       uuid.UUID
	EventID  uuid.UUID
	UserID   uuid.UUID
	Username string
	Status   Status
}

type Review struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	UserID    uuid.UUID
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

type Invitation struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	InviteeID   uuid.UUID
	InvitedByID *uuid.UUID
	Accepted    bool
	CreatedAt   time.Time
	ExpiresAt   *time.Time
}

// InvitationDetail is an invitation joined with the names needed to
// compose the invite email.
type InvitationDetail struct {
	Invitation
	EventTitle     string
	EventStartTime time.Time
	InviteeEmail   string
	InviteeName    string
	InviterName    string
}

type EventCreateParams struct {
	Title       string
	Description string
	OrganizerID uuid.UUID
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	IsPublic    bool
}

type EventUpdateParams struct {
	Title       *string
	Description *string
	Location    *string
	StartTime   *time.Time
	EndTime     *time.Time
	IsPublic    *bool
}

type InvitationCreateParams struct {
	EventID     uuid.UUID
	InviteeID   uuid.UUID
	InvitedByID uuid.UUID
	ExpiresAt   *time.Time
}

type RSVPCreateParams struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Status  Status
}

type ReviewCreateParams struct {
	EventID uuid.UUID
	UserID  uuid.UUID
	Rating  int
	Comment string
}

type Pagination struct {
	Limit  int
	Offset int
}

type ListResult struct {
	Events []Event
	Total  int64
}

type ReviewList struct {
	Reviews []Review
	Total   int64
}

type Repository interface {
	// List returns the events visible to viewer (nil for anonymous):
	// public events plus, for authenticated viewers, events they organize
	// or hold an invitation for.
	List(ctx context.Context, viewer *uuid.UUID, filters Filters, page Pagination) (ListResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Create(ctx context.Context, params EventCreateParams) (*Event, error)
	Update(ctx context.Context, id uuid.UUID, params EventUpdateParams) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error

	HasInvitation(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	CreateInvitation(ctx context.Context, params InvitationCreateParams) (*Invitation, error)
	GetInvitationDetail(ctx context.Context, id uuid.UUID) (*InvitationDetail, error)

	CreateRSVP(ctx context.Context, params RSVPCreateParams) (*RSVP, error)
	GetRSVP(ctx context.Context, eventID, userID uuid.UUID) (*RSVP, error)
	UpdateRSVPStatus(ctx context.Context, eventID, userID uuid.UUID, status Status) (*RSVP, error)
	ListRSVPEmails(ctx context.Context, eventID uuid.UUID) ([]string, error)

	ListReviews(ctx context.Context, eventID uuid.UUID, page Pagination) (ReviewList, error)
	CreateReview(ctx context.Context, params ReviewCreateParams) (*Review, error)
}

// UserDirectory resolves user identities from the users domain without
// importing it.
type UserDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Notifier dispatches best-effort asynchronous notifications. Implementations
// must not block the caller on delivery and must swallow enqueue failures.
type Notifier interface {
	InvitationCreated(ctx context.Context, invitationID uuid.UUID)
	RSVPCreated(ctx context.Context, eventID uuid.UUID, message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) InvitationCreated(context.Context, uuid.UUID) {}

func (NopNotifier) RSVPCreated(context.Context, uuid.UUID, string) {}
