package auth

import (
	"strings"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
)

const bearerScheme = "bearer"

// ParseBearerHeader extracts the token from an Authorization header value of
// the form "Bearer <token>". The scheme is matched case-insensitively. The
// token itself is not inspected.
func ParseBearerHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperrors.ErrMissingHeader
	}

	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", apperrors.ErrMalformedHeader
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperrors.ErrMalformedHeader
	}
	return raw, nil
}
