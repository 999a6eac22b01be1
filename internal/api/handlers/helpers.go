package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gatherly/server/internal/api/pagination"
	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// pageOutOfRange reports whether the requested page starts past the last
// row. The first page is always in range, even when empty.
func pageOutOfRange(page pagination.Page, total int64) bool {
	return page.Number > 1 && int64(page.Offset()) >= total
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON decodes the request body into dst and runs struct validation.
// A failure is reported to the client and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, validate *validator.Validate, env string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		problem.Validation(w, r, err, env, problem.WithDetail("request body is not valid JSON"))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			problem.Validation(w, r, err, env, problem.WithErrors(validationErrors(fieldErrs)))
			return false
		}
		problem.Validation(w, r, err, env)
		return false
	}
	return true
}

func validationErrors(errs validator.ValidationErrors) map[string]interface{} {
	out := make(map[string]interface{}, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = "this field is required"
		case "email":
			out[field] = "must be a valid email address"
		case "min":
			out[field] = "must be at least " + fe.Param()
		case "max":
			out[field] = "must be at most " + fe.Param()
		default:
			out[field] = "failed " + fe.Tag() + " validation"
		}
	}
	return out
}

// pathUUID parses a UUID path parameter. An unparseable value is reported
// as a not-found, matching how unknown resources are hidden.
func pathUUID(w http.ResponseWriter, r *http.Request, name, env string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(r.PathValue(name)))
	if err != nil {
		problem.NotFound(w, r, err, env)
		return uuid.Nil, false
	}
	return id, true
}

// respondDomainError maps domain errors onto problem responses.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var eventsField events.FieldError
	var usersField users.FieldError

	switch {
	case errors.Is(err, events.ErrNotFound),
		errors.Is(err, events.ErrRSVPNotFound),
		errors.Is(err, events.ErrInviteeNotFound),
		errors.Is(err, users.ErrNotFound):
		problem.NotFound(w, r, err, env)
	case errors.Is(err, events.ErrForbidden):
		problem.Forbidden(w, r, err, env)
	case errors.Is(err, events.ErrDuplicateRSVP):
		problem.Validation(w, r, err, env, problem.WithDetail("you have already RSVP'd to this event"))
	case errors.Is(err, events.ErrDuplicateInvitation):
		problem.Validation(w, r, err, env, problem.WithDetail("this user has already been invited"))
	case errors.Is(err, users.ErrUsernameTaken):
		problem.Validation(w, r, err, env, problem.WithErrors(map[string]interface{}{
			"username": "a user with that username already exists",
		}))
	case errors.Is(err, users.ErrInvalidCredentials):
		problem.Unauthorized(w, r, err, env)
	case errors.As(err, &eventsField):
		problem.Validation(w, r, err, env, problem.WithErrors(map[string]interface{}{
			eventsField.Field: eventsField.Message,
		}))
	case errors.As(err, &usersField):
		problem.Validation(w, r, err, env, problem.WithErrors(map[string]interface{}{
			usersField.Field: usersField.Message,
		}))
	default:
		problem.ServerError(w, r, err, env)
	}
}
