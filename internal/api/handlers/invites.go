package handlers

import (
	"net/http"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
)

type invitationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Event     uuid.UUID  `json:"event"`
	Invitee   uuid.UUID  `json:"invitee"`
	InvitedBy *uuid.UUID `json:"invited_by"`
	Accepted  bool       `json:"accepted"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func newInvitationResponse(invitation *events.Invitation) invitationResponse {
	return invitationResponse{
		ID:        invitation.ID,
		Event:     invitation.EventID,
		Invitee:   invitation.InviteeID,
		InvitedBy: invitation.InvitedByID,
		Accepted:  invitation.Accepted,
		CreatedAt: invitation.CreatedAt,
		ExpiresAt: invitation.ExpiresAt,
	}
}

type inviteRequest struct {
	Invitee   uuid.UUID  `json:"invitee" validate:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *EventsHandler) Invite(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	eventID, ok := pathUUID(w, r, "id", h.Env)
	if !ok {
		return
	}

	var req inviteRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	invitation, err := h.Service.Invite(r.Context(), *actor, eventID, req.Invitee, req.ExpiresAt)
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, newInvitationResponse(invitation))
}
