package middleware

import (
	"context"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/google/uuid"
)

const actorKey contextKey = "actor"

// ActorFromContext returns the authenticated actor, or nil for anonymous requests.
func ActorFromContext(ctx context.Context) *events.Actor {
	if actor, ok := ctx.Value(actorKey).(*events.Actor); ok {
		return actor
	}
	return nil
}

// WithActor returns a context carrying the given actor. Exposed for handler tests.
func WithActor(ctx context.Context, actor *events.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func actorFromRequest(r *http.Request, manager *auth.JWTManager) (*events.Actor, error) {
	token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}

	claims, err := manager.ValidateAccess(token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	return &events.Actor{ID: id, Username: claims.Username}, nil
}

// RequireAuth rejects requests without a valid bearer access token.
func RequireAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := actorFromRequest(r, manager)
			if err != nil {
				problem.Unauthorized(w, r, err, env)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// OptionalAuth resolves the actor when a valid token is present and lets
// anonymous requests through. A malformed or expired token is still rejected
// so that clients never mistake a 404 for a credential problem.
func OptionalAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := actorFromRequest(r, manager)
			if err != nil {
				problem.Unauthorized(w, r, err, env)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
