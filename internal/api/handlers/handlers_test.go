package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/google/uuid"
)

// memRepo is an in-memory events.Repository good enough to drive handler
// scenarios end to end, including the visibility union and uniqueness rules
// the real database enforces.
type memRepo struct {
	events      map[uuid.UUID]*events.Event
	invitations []*events.Invitation
	rsvps       []*events.RSVP
	reviews     []*events.Review
	usernames   map[uuid.UUID]string
}

func newMemRepo() *memRepo {
	return &memRepo{
		events:    make(map[uuid.UUID]*events.Event),
		usernames: make(map[uuid.UUID]string),
	}
}

func (m *memRepo) addUser(username string) uuid.UUID {
	id := uuid.New()
	m.usernames[id] = username
	return id
}

func (m *memRepo) addEvent(title string, organizer uuid.UUID, public bool) *events.Event {
	now := time.Now().UTC()
	event := &events.Event{
		ID:            uuid.New(),
		Title:         title,
		OrganizerID:   organizer,
		OrganizerName: m.usernames[organizer],
		StartTime:     now.Add(24 * time.Hour),
		EndTime:       now.Add(26 * time.Hour),
		IsPublic:      public,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.events[event.ID] = event
	return event
}

func (m *memRepo) visible(event *events.Event, viewer *uuid.UUID) bool {
	if event.IsPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	if event.OrganizerID == *viewer {
		return true
	}
	for _, inv := range m.invitations {
		if inv.EventID == event.ID && inv.InviteeID == *viewer {
			return true
		}
	}
	return false
}

func (m *memRepo) List(_ context.Context, viewer *uuid.UUID, filters events.Filters, page events.Pagination) (events.ListResult, error) {
	var all []events.Event
	for _, event := range m.events {
		if !m.visible(event, viewer) {
			continue
		}
		if filters.Location != "" && event.Location != filters.Location {
			continue
		}
		if filters.OrganizerID != nil && event.OrganizerID != *filters.OrganizerID {
			continue
		}
		if filters.Search != "" && !strings.Contains(event.Title, filters.Search) {
			continue
		}
		all = append(all, *event)
	}

	total := int64(len(all))
	if page.Offset >= len(all) {
		return events.ListResult{Total: total}, nil
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return events.ListResult{Events: all[page.Offset:end], Total: total}, nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*events.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	copied := *event
	return &copied, nil
}

func (m *memRepo) Create(_ context.Context, params events.EventCreateParams) (*events.Event, error) {
	now := time.Now().UTC()
	event := &events.Event{
		ID:            uuid.New(),
		Title:         params.Title,
		Description:   params.Description,
		OrganizerID:   params.OrganizerID,
		OrganizerName: m.usernames[params.OrganizerID],
		Location:      params.Location,
		StartTime:     params.StartTime,
		EndTime:       params.EndTime,
		IsPublic:      params.IsPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.events[event.ID] = event
	copied := *event
	return &copied, nil
}

func (m *memRepo) Update(_ context.Context, id uuid.UUID, params events.EventUpdateParams) (*events.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	if params.Title != nil {
		event.Title = *params.Title
	}
	if params.Description != nil {
		event.Description = *params.Description
	}
	if params.Location != nil {
		event.Location = *params.Location
	}
	if params.StartTime != nil {
		event.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		event.EndTime = *params.EndTime
	}
	if params.IsPublic != nil {
		event.IsPublic = *params.IsPublic
	}
	event.UpdatedAt = time.Now().UTC()
	copied := *event
	return &copied, nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.events[id]; !ok {
		return events.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memRepo) HasInvitation(_ context.Context, eventID, userID uuid.UUID) (bool, error) {
	for _, inv := range m.invitations {
		if inv.EventID == eventID && inv.InviteeID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) CreateInvitation(_ context.Context, params events.InvitationCreateParams) (*events.Invitation, error) {
	for _, inv := range m.invitations {
		if inv.EventID == params.EventID && inv.InviteeID == params.InviteeID {
			return nil, events.ErrDuplicateInvitation
		}
	}
	invitedBy := params.InvitedByID
	invitation := &events.Invitation{
		ID:          uuid.New(),
		EventID:     params.EventID,
		InviteeID:   params.InviteeID,
		InvitedByID: &invitedBy,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   params.ExpiresAt,
	}
	m.invitations = append(m.invitations, invitation)
	copied := *invitation
	return &copied, nil
}

func (m *memRepo) GetInvitationDetail(_ context.Context, id uuid.UUID) (*events.InvitationDetail, error) {
	return nil, events.ErrNotFound
}

func (m *memRepo) CreateRSVP(_ context.Context, params events.RSVPCreateParams) (*events.RSVP, error) {
	for _, rsvp := range m.rsvps {
		if rsvp.EventID == params.EventID && rsvp.UserID == params.UserID {
			return nil, events.ErrDuplicateRSVP
		}
	}
	rsvp := &events.RSVP{
		ID:       uuid.New(),
		EventID:  params.EventID,
		UserID:   params.UserID,
		Username: m.usernames[params.UserID],
		Status:   params.Status,
	}
	m.rsvps = append(m.rsvps, rsvp)
	copied := *rsvp
	return &copied, nil
}

func (m *memRepo) GetRSVP(_ context.Context, eventID, userID uuid.UUID) (*events.RSVP, error) {
	for _, rsvp := range m.rsvps {
		if rsvp.EventID == eventID && rsvp.UserID == userID {
			copied := *rsvp
			return &copied, nil
		}
	}
	return nil, events.ErrRSVPNotFound
}

func (m *memRepo) UpdateRSVPStatus(_ context.Context, eventID, userID uuid.UUID, status events.Status) (*events.RSVP, error) {
	for _, rsvp := range m.rsvps {
		if rsvp.EventID == eventID && rsvp.UserID == userID {
			rsvp.Status = status
			copied := *rsvp
			return &copied, nil
		}
	}
	return nil, events.ErrRSVPNotFound
}

func (m *memRepo) ListRSVPEmails(_ context.Context, eventID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (m *memRepo) ListReviews(_ context.Context, eventID uuid.UUID, page events.Pagination) (events.ReviewList, error) {
	var all []events.Review
	for _, review := range m.reviews {
		if review.EventID == eventID {
			all = append(all, *review)
		}
	}
	total := int64(len(all))
	if page.Offset >= len(all) {
		return events.ReviewList{Total: total}, nil
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return events.ReviewList{Reviews: all[page.Offset:end], Total: total}, nil
}

func (m *memRepo) CreateReview(_ context.Context, params events.ReviewCreateParams) (*events.Review, error) {
	review := &events.Review{
		ID:        uuid.New(),
		EventID:   params.EventID,
		UserID:    params.UserID,
		Username:  m.usernames[params.UserID],
		Rating:    params.Rating,
		Comment:   params.Comment,
		CreatedAt: time.Now().UTC(),
	}
	m.reviews = append(m.reviews, review)
	copied := *review
	return &copied, nil
}

// memDirectory resolves user existence against memRepo's username table.
type memDirectory struct {
	repo *memRepo
}

func (d memDirectory) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := d.repo.usernames[id]
	return ok, nil
}

// memUsers is an in-memory users.Repository for registration and token tests.
type memUsers struct {
	byID map[uuid.UUID]*users.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uuid.UUID]*users.User)}
}

func (m *memUsers) Create(_ context.Context, params users.CreateParams) (*users.User, error) {
	for _, user := range m.byID {
		if user.Username == params.Username {
			return nil, users.ErrUsernameTaken
		}
	}
	user := &users.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.byID[user.ID] = user
	copied := *user
	return &copied, nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*users.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*users.User, error) {
	for _, user := range m.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, users.ErrNotFound
}

func (m *memUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.byID[id]
	return ok, nil
}
