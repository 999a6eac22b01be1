package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gatherly/server/internal/api/handlers"
	"github.com/gatherly/server/internal/api/middleware"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/gatherly/server/internal/metrics"
	"github.com/rs/zerolog"
)

// Deps carries the collaborators the router wires into handlers.
type Deps struct {
	Events  *events.Service
	Users   *users.Service
	JWT     *auth.JWTManager
	DB      handlers.Pinger
	Version string
}

func NewRouter(cfg config.Config, deps Deps, logger zerolog.Logger) http.Handler {
	eventsHandler := handlers.NewEventsHandler(deps.Events, cfg.Environment, cfg.API.PageSize)
	usersHandler := handlers.NewUsersHandler(deps.Users, cfg.Environment)
	tokensHandler := handlers.NewTokensHandler(deps.Users, deps.JWT, cfg.Environment)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Version)

	requireAuth := middleware.RequireAuth(deps.JWT, cfg.Environment)
	optionalAuth := middleware.OptionalAuth(deps.JWT, cfg.Environment)

	mux := http.NewServeMux()

	mux.Handle("/healthz", http.HandlerFunc(healthHandler.Healthz))
	mux.Handle("/readyz", http.HandlerFunc(healthHandler.Readyz))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/users/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(usersHandler.Register),
	}))
	mux.Handle("/api/token/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(tokensHandler.Obtain),
	}))
	mux.Handle("/api/token/refresh/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(tokensHandler.Refresh),
	}))

	mux.Handle("/api/events/{$}", methodMux(map[string]http.Handler{
		http.MethodGet:  optionalAuth(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: requireAuth(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/api/events/{id}/{$}", methodMux(map[string]http.Handler{
		http.MethodGet:    optionalAuth(http.HandlerFunc(eventsHandler.Get)),
		http.MethodPut:    requireAuth(http.HandlerFunc(eventsHandler.Update)),
		http.MethodPatch:  requireAuth(http.HandlerFunc(eventsHandler.Update)),
		http.MethodDelete: requireAuth(http.HandlerFunc(eventsHandler.Delete)),
	}))
	mux.Handle("/api/events/{id}/invite/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: requireAuth(http.HandlerFunc(eventsHandler.Invite)),
	}))
	mux.Handle("/api/events/{event_id}/rsvp/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: requireAuth(http.HandlerFunc(eventsHandler.CreateRSVP)),
	}))
	mux.Handle("/api/events/{event_id}/rsvp/{user_id}/{$}", methodMux(map[string]http.Handler{
		http.MethodPatch: requireAuth(http.HandlerFunc(eventsHandler.UpdateRSVP)),
	}))
	mux.Handle("/api/events/{event_id}/reviews/{$}", methodMux(map[string]http.Handler{
		http.MethodGet:  optionalAuth(http.HandlerFunc(eventsHandler.ListReviews)),
		http.MethodPost: requireAuth(http.HandlerFunc(eventsHandler.CreateReview)),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
