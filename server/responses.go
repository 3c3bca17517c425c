package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	msgNotAuthenticated      = "Not authenticated"
	msgMalformedHeader       = "Invalid authorization header provided"
	msgCouldNotValidate      = "Could not validate credentials."
	msgInsufficientPrivilege = "Insufficient privilege."
	msgInactiveUser          = "User is inactive."
	msgIncorrectLogin        = "Incorrect email or password."
	msgPasswordMismatch      = "Passwords do not match"
	msgInternal              = "Internal server error"
)

// ErrorResponse is the body of every non 2xx JSON response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// writeAuthError maps an error from a protected route to its response.
// required is echoed in the WWW-Authenticate challenge.
func writeAuthError(w http.ResponseWriter, err error, required []string) {
	switch {
	case apperrors.Is(err, apperrors.ErrMissingHeader):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, msgNotAuthenticated)
	case apperrors.Is(err, apperrors.ErrMalformedHeader):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, msgMalformedHeader)
	case apperrors.Is(err, apperrors.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", bearerChallenge(required))
		writeDetail(w, http.StatusUnauthorized, msgCouldNotValidate)
	case apperrors.Is(err, apperrors.ErrInsufficientPrivilege):
		w.Header().Set("WWW-Authenticate", bearerChallenge(required))
		writeDetail(w, http.StatusUnauthorized, msgInsufficientPrivilege)
	case apperrors.Is(err, apperrors.ErrUserDisabled):
		writeDetail(w, http.StatusUnauthorized, msgInactiveUser)
	default:
		writeError(w, err)
	}
}

// writeError handles errors that are not specific to one route.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrPasswordMismatch):
		writeDetail(w, http.StatusConflict, msgPasswordMismatch)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		writeDetail(w, http.StatusUnprocessableEntity, apperrors.Message(err, apperrors.ErrInvalidInput))
	default:
		log.Error().Err(err).Msg("request failed")
		writeDetail(w, http.StatusInternalServerError, msgInternal)
	}
}

func bearerChallenge(scopes []string) string {
	if len(scopes) == 0 {
		return "Bearer"
	}
	return fmt.Sprintf("Bearer scope=%q", strings.Join(scopes, " "))
}
