package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/kotsioskl2/vehicle-market/internal/listing/usecase"
)

// SessionResolver turns a bearer token into the tri-state session. An empty
// token resolves to anonymous; a session-store outage resolves to unresolved.
type SessionResolver interface {
	Resolve(ctx context.Context, bearer string) usecase.Session
}

type contextKey string

const sessionCtxKey = contextKey("session")

// SessionFromContext returns the session placed by the Session middleware.
// Requests that bypassed the middleware read as unresolved.
func SessionFromContext(ctx context.Context) usecase.Session {
	if s, ok := ctx.Value(sessionCtxKey).(usecase.Session); ok {
		return s
	}
	return usecase.Session{State: usecase.SessionUnresolved}
}

// Session resolves the Authorization header once per request and stores the
// result in the request context.
func Session(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)

			session := resolver.Resolve(r.Context(), token)
			ctx := context.WithValue(r.Context(), sessionCtxKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates the admin surface on the routing decision: an unresolved
// session cannot be acted on yet (401), a resolved non-admin is turned away
// (403), a resolved admin proceeds.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch usecase.RouteFor(SessionFromContext(r.Context())) {
		case usecase.DecisionProceed:
			next.ServeHTTP(w, r)
		case usecase.DecisionRedirect:
			writeJSONError(w, http.StatusForbidden, "admin role required")
		default:
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
		}
	})
}
