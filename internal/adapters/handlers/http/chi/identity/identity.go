package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"
)

type contextKey string

const identityKey contextKey = "identity"

// Middleware validates the bearer token and stores the caller identity in the
// request context
func Middleware(auth port.AuthService, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			id, err := auth.ValidateToken(token)
			if err != nil {
				l.Warn("token rejected", "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(Into(r.Context(), *id)))
		})
	}
}

// Into stores an identity in a context. Exposed for handler tests.
func Into(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext recovers the identity stored by Middleware
func FromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}
