package handlers

import (
	"net/http"
	"time"

	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/api/pagination"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
)

type reviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Event     uuid.UUID `json:"event"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewResponse(review *events.Review) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		Event:     review.EventID,
		User:      review.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

func (h *EventsHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "event_id", h.Env)
	if !ok {
		return
	}

	page, err := pagination.ParsePage(r.URL.Query(), h.PageSize)
	if err != nil {
		problem.Validation(w, r, err, h.Env, problem.WithDetail("page must be a positive integer"))
		return
	}

	result, err := h.Service.ListReviews(r.Context(), eventID, events.Pagination{
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

	items := make([]reviewResponse, 0, len(result.Reviews))
	for i := range result.Reviews {
		items = append(items, newReviewResponse(&result.Reviews[i]))
	}

	writeJSON(w, http.StatusOK, pagination.NewEnvelope(page, result.Total, items))
}

type reviewCreateRequest struct {
	// Rating is any integer; pointer so an explicit 0 is accepted while a
	// missing field is rejected.
	Rating  *int   `json:"rating" validate:"required"`
	Comment string `json:"comment"`
}

func (h *EventsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		problem.Unauthorized(w, r, nil, h.Env)
		return
	}

	eventID, ok := pathUUID(w, r, "event_id", h.Env)
	if !ok {
		return
	}

	var req reviewCreateRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	review, err := h.Service.CreateReview(r.Context(), *actor, eventID, *req.Rating, req.Comment)
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, newReviewResponse(review))
}
