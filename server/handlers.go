package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/users"
)

const publicMessage = "Welcome to the Go API skeleton."

// UserRead is the public view of an account.
type UserRead struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserRead(u *users.User) UserRead {
	return UserRead{Email: u.Email, Name: u.Name}
}

// NewPassword is the body of a password change.
type NewPassword struct {
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

// PublicHandler needs no credentials.
func (s *Server) PublicHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": publicMessage})
	}
}

// TokenHandler exchanges form credentials (username, password) for a bearer token.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid form data")
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		accessToken, err := s.auth.Login(r.Context(), username, password)
		switch {
		case err == nil:
			w.Header().Set("Cache-Control", "no-store")
			writeJSON(w, http.StatusOK, accessToken)
		case apperrors.Is(err, apperrors.ErrUserDisabled):
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, fmt.Sprintf("Useraccount for '%s' is disabled.", username))
		case apperrors.Is(err, apperrors.ErrUnauthenticated):
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, msgIncorrectLogin)
		default:
			writeError(w, err)
		}
	}
}

// WhoAmIHandler returns the authenticated user.
func (s *Server) WhoAmIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, apperrors.ErrUnauthenticated, nil)
			return
		}
		writeJSON(w, http.StatusOK, toUserRead(user))
	}
}

// ChangePasswordHandler expects {"password", "confirmation"}.
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			writeAuthError(w, apperrors.ErrUnauthenticated, nil)
			return
		}

		var body NewPassword
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid JSON body")
			return
		}

		updated, err := s.auth.ChangePassword(r.Context(), user, body.Password, body.Confirmation)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserRead(updated))
	}
}

// LogoutHandler revokes the presented token.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.Logout(r.Context(), r.Header.Get("Authorization")); err != nil {
			writeAuthError(w, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SettingsHandler shows the effective configuration in DEV only.
func (s *Server) SettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env != "DEV" {
			writeJSON(w, http.StatusOK, map[string]string{"message": "You are not allowed to see this."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"settings": s.config.Redacted()})
	}
}

// PreflightHandler answers OPTIONS requests that carry no Origin.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
