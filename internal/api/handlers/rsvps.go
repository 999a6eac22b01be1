package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
)

type rsvpResponse struct {
	ID     uuid.UUID     `json:"id"`
	Event  uuid.UUID     `json:"event"`
	User   string        `json:"user"`
	Status events.Status `json:"status"`
}

func newRSVPResponse(rsvp *events.RSVP) rsvpResponse {
	return rsvpResponse{
		ID:     rsvp.ID,
		Event:  rsvp.EventID,
		User:   rsvp.Username,
		Status: rsvp.Status,
	}
}

type rsvpRequest struct {
	Status events.Status `json:"status" validate:"required"`
}

func (h *EventsHandler) CreateRSVP(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	eventID, ok := pathUUID(w, r, "event_id", h.Env)
	if !ok {
		return
	}

	var req rsvpRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	rsvp, err := h.Service.CreateRSVP(r.Context(), *actor, eventID, req.Status)
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, newRSVPResponse(rsvp))
}

func (h *EventsHandler) UpdateRSVP(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	eventID, ok := pathUUID(w, r, "event_id", h.Env)
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "user_id", h.Env)
	if !ok {
		return
	}

	var req rsvpRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	rsvp, err := h.Service.UpdateRSVP(r.Context(), *actor, eventID, userID, req.Status)
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, newRSVPResponse(rsvp))
}
