package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/pkg/ctxutil"
)

// identifier resolves a bearer token to an owner identity.
type identifier interface {
	Identify(ctx context.Context, token string) (string, error)
}

// Auth returns middleware that requires a valid bearer token and stores the
// resolved identity in the request context. Used in remote mode.
func Auth(id identifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			identity, err := id.Identify(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DemoIdentity returns middleware that pins every request to the fixed demo
// identity. Used in local mode, where there is no login screen.
func DemoIdentity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithIdentity(r.Context(), domain.DemoOwnerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
