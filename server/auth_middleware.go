package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-api-skeleton/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated *users.User
const ContextKeyUser ContextKey = "user"

// RequireAuth validates the bearer token in the Authorization header and
// checks it carries every one of requiredScopes. The resolved user is put
// on the request context.
func (s *Server) RequireAuth(requiredScopes ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := s.auth.Authorize(r.Context(), r.Header.Get("Authorization"), requiredScopes...)
			if err != nil {
				writeAuthError(w, err, requiredScopes)
				return
			}
			next(w, r.WithContext(WithUser(r.Context(), user)))
		}
	}
}

func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// UserFromContext returns the user set by RequireAuth, or nil.
func UserFromContext(ctx context.Context) *users.User {
	user, _ := ctx.Value(ContextKeyUser).(*users.User)
	return user
}
