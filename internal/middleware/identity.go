package middleware

import (
	"context"
	"net/http"
)

// Injected key type to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// IdentityMiddleware copies the opaque x-user-id header into the request
// context. It never rejects: endpoints that require an owner identity
// enforce it through the access gate, and generation accepts anonymous
// callers by minting a fresh identifier.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("x-user-id")
		ctx := context.WithValue(r.Context(), UserContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the caller-supplied user identifier, which may
// be empty or syntactically invalid. Callers validate it.
func UserFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserContextKey).(string)
	return userID
}
