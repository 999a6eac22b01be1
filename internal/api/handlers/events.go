package handlers

import (
	"net/http"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/pagination"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type EventsHandler struct {
	Service  *events.Service
	Env      string
	PageSize int

	validate *validator.Validate
}

func NewEventsHandler(service *events.Service, env string, pageSize int) *EventsHandler {
	return &EventsHandler{
		Service:  service,
		Env:      env,
		PageSize: pageSize,
		validate: validator.New(),
	}
}

type eventResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Organizer   string    `json:"organizer"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newEventResponse(event *events.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Organizer:   event.OrganizerName,
		Location:    event.Location,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
		IsPublic:    event.IsPublic,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := events.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Validation(w, r, err, h.Env)
		return
	}

	page, err := pagination.ParsePage(r.URL.Query(), h.PageSize)
	if err != nil {
		problem.Validation(w, r, err, h.Env, problem.WithDetail("page must be a positive integer"))
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	result, err := h.Service.List(r.Context(), actor, filters, events.Pagination{
		Limit:  page.Size,
		Offset: page.Offset(),
	})
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}
	if pageOutOfRange(page, result.Total) {
		problem.NotFound(w, r, nil, h.Env, problem.WithDetail("invalid page"))
		return
	}

	items := make([]eventResponse, 0, len(result.Events))
	for i := range result.Events {
		items = append(items, newEventResponse(&result.Events[i]))
	}

	writeJSON(w, http.StatusOK, pagination.NewEnvelope(page, result.Total, items))
}

type eventCreateRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	IsPublic    bool      `json:"is_public"`
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	var req eventCreateRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	event, err := h.Service.Create(r.Context(), *actor, events.EventCreateParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, newEventResponse(event))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", h.Env)
	if !ok {
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	event, err := h.Service.Get(r.Context(), actor, id)
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, newEventResponse(event))
}

type eventUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	IsPublic    *bool      `json:"is_public"`
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	id, ok := pathUUID(w, r, "id", h.Env)
	if !ok {
		return
	}

	var req eventUpdateRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	event, err := h.Service.Update(r.Context(), *actor, id, events.EventUpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, newEventResponse(event))
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	id, ok := pathUUID(w, r, "id", h.Env)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), *actor, id); err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
