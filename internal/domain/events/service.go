package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	users    UserDirectory
	notifier Notifier
}

func NewService(repo Repository, users UserDirectory, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{repo: repo, users: users, notifier: notifier}
}

func (s *Service) List(ctx context.Context, actor *Actor, filters Filters, page Pagination) (ListResult, error) {
	var viewer *uuid.UUID
	if actor != nil {
		viewer = &actor.ID
	}
	return s.repo.List(ctx, viewer, filters, page)
}

// Get retrieves a single event subject to visibility. Private events the
// actor cannot see read as not found rather than forbidden, so their
// existence is not leaked.
func (s *Service) Get(ctx context.Context, actor *Actor, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	invited, err := s.actorInvited(ctx, actor, event)
	if err != nil {
		return nil, err
	}
	if !CanViewEvent(actor, event, invited) {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *Service) Create(ctx context.Context, actor Actor, params EventCreateParams) (*Event, error) {
	if err := validateEventParams(params); err != nil {
		return nil, err
	}
	// Organizer is always the caller, never taken from the request body.
	params.OrganizerID = actor.ID
	return s.repo.Create(ctx, params)
}

func (s *Service) Update(ctx context.Context, actor Actor, id uuid.UUID, params EventUpdateParams) (*Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditEvent(actor, event) {
		return nil, ErrForbidden
	}
	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, FieldError{Field: "title", Message: "must not be empty"}
	}
	return s.repo.Update(ctx, id, params)
}

func (s *Service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanEditEvent(actor, event) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// Invite creates an invitation for a private (or public) event and enqueues
// the invite email. Only the organizer may invite; the invitee must exist;
// a second invitation for the same (event, invitee) pair is rejected without
// touching the existing row.
func (s *Service) Invite(ctx context.Context, actor Actor, eventID, inviteeID uuid.UUID, expiresAt *time.Time) (*Invitation, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !CanInvite(actor, event) {
		return nil, ErrForbidden
	}

	exists, err := s.users.Exists(ctx, inviteeID)
	if err != nil {
		return nil, fmt.Errorf("resolve invitee: %w", err)
	}
	if !exists {
		return nil, ErrInviteeNotFound
	}

	invitation, err := s.repo.CreateInvitation(ctx, InvitationCreateParams{
		EventID:     eventID,
		InviteeID:   inviteeID,
		InvitedByID: actor.ID,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.InvitationCreated(ctx, invitation.ID)
	return invitation, nil
}

// CreateRSVP records the actor's attendance intent for an event they can
// see, then notifies every RSVP'd user (the actor included) of the new RSVP.
func (s *Service) CreateRSVP(ctx context.Context, actor Actor, eventID uuid.UUID, status Status) (*RSVP, error) {
	if !status.Valid() {
		return nil, FieldError{Field: "status", Message: "must be one of Going, Maybe, Not Going"}
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	invited, err := s.actorInvited(ctx, &actor, event)
	if err != nil {
		return nil, err
	}
	if !CanViewEvent(&actor, event, invited) {
		return nil, ErrNotFound
	}

	rsvp, err := s.repo.CreateRSVP(ctx, RSVPCreateParams{
		EventID: eventID,
		UserID:  actor.ID,
		Status:  status,
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s RSVP'd %s to %s", actor.Username, status, event.Title)
	s.notifier.RSVPCreated(ctx, eventID, message)
	return rsvp, nil
}

func (s *Service) UpdateRSVP(ctx context.Context, actor Actor, eventID, userID uuid.UUID, status Status) (*RSVP, error) {
	if !status.Valid() {
		return nil, FieldError{Field: "status", Message: "must be one of Going, Maybe, Not Going"}
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rsvp, err := s.repo.GetRSVP(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !CanEditRSVP(actor, rsvp, event) {
		return nil, ErrForbidden
	}

	return s.repo.UpdateRSVPStatus(ctx, eventID, userID, status)
}

func (s *Service) ListReviews(ctx context.Context, eventID uuid.UUID, page Pagination) (ReviewList, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return ReviewList{}, err
	}
	return s.repo.ListReviews(ctx, eventID, page)
}

// CreateReview records a review. Event visibility is deliberately not
// re-checked at write time; any authenticated user may review any event
// that exists, and a user may review the same event more than once.
func (s *Service) CreateReview(ctx context.Context, actor Actor, eventID uuid.UUID, rating int, comment string) (*Review, error) {
	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.CreateReview(ctx, ReviewCreateParams{
		EventID: eventID,
		UserID:  actor.ID,
		Rating:  rating,
		Comment: comment,
	})
}

func (s *Service) actorInvited(ctx context.Context, actor *Actor, event *Event) (bool, error) {
	if actor == nil || event.IsPublic || actor.ID == event.OrganizerID {
		return false, nil
	}
	invited, err := s.repo.HasInvitation(ctx, event.ID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("check invitation: %w", err)
	}
	return invited, nil
}

func validateEventParams(params EventCreateParams) error {
	if strings.TrimSpace(params.Title) == "" {
		return FieldError{Field: "title", Message: "must not be empty"}
	}
	if params.StartTime.IsZero() {
		return FieldError{Field: "start_time", Message: "must be set"}
	}
	if params.EndTime.IsZero() {
		return FieldError{Field: "end_time", Message: "must be set"}
	}
	return nil
}
