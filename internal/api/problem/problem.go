package problem

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

const (
	TypeValidation   = "https://gatherly.example/problems/validation-error"
	TypeUnauthorized = "https://gatherly.example/problems/unauthorized"
	TypeForbidden    = "https://gatherly.example/problems/forbidden"
	TypeNotFound     = "https://gatherly.example/problems/not-found"
	TypeServerError  = "https://gatherly.example/problems/server-error"
)

type ProblemDetails struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Errors   map[string]interface{} `json:"errors,omitempty"`
}

type Option func(*ProblemDetails)

func WithDetail(detail string) Option {
	return func(p *ProblemDetails) {
		p.Detail = detail
	}
}

func WithErrors(errs map[string]interface{}) Option {
	return func(p *ProblemDetails) {
		p.Errors = errs
	}
}

func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string, opts ...Option) {
	problem := ProblemDetails{
		Type:   typ,
		Title:  title,
		Status: status,
	}

	for _, opt := range opts {
		opt(&problem)
	}

	if problem.Detail == "" && err != nil {
		if env == "development" || env == "test" {
			problem.Detail = err.Error()
		} else {
			problem.Detail = http.StatusText(status)
		}
	}

	if problem.Instance == "" && r != nil {
		problem.Instance = r.URL.Path
	}

	if err != nil && r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("type", typ).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(title)
	}

	WriteProblem(w, problem)
}

// Validation writes a 400 problem response.
func Validation(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	Write(w, r, http.StatusBadRequest, TypeValidation, "Invalid request", err, env, opts...)
}

// Unauthorized writes a 401 problem response.
func Unauthorized(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	Write(w, r, http.StatusUnauthorized, TypeUnauthorized, "Authentication required", err, env, opts...)
}

// Forbidden writes a 403 problem response.
func Forbidden(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	Write(w, r, http.StatusForbidden, TypeForbidden, "Forbidden", err, env, opts...)
}

// NotFound writes a 404 problem response.
func NotFound(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	Write(w, r, http.StatusNotFound, TypeNotFound, "Not found", err, env, opts...)
}

// ServerError writes a 500 problem response.
func ServerError(w http.ResponseWriter, r *http.Request, err error, env string, opts ...Option) {
	Write(w, r, http.StatusInternalServerError, TypeServerError, "Server error", err, env, opts...)
}

func WriteProblem(w http.ResponseWriter, problem ProblemDetails) {
	payload, err := json.Marshal(problem)
	if err != nil {
		fallback := fmt.Sprintf("{\"type\":\"about:blank\",\"title\":\"%s\",\"status\":500}", http.StatusText(http.StatusInternalServerError))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(problem.Status)
	_, _ = w.Write(payload)
}
