package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "landingwaitlist/internal/delivery/http/helpers"
	"landingwaitlist/internal/domain"
)

type contextKey string

const adminKey contextKey = "admin"

// SetAdmin returns a context carrying the authenticated admin subject.
func SetAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminKey, subject)
}

// AdminFromContext returns the authenticated admin subject, if present.
func AdminFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(adminKey).(string)
	return sub, ok && sub != ""
}

// RequireAdmin returns a wrapper that validates the Bearer token and stores the admin subject in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "admin token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetAdmin(r.Context(), subject)))
		}
	}
}
