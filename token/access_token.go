package token

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const TokenTypeBearer = "bearer"

// AccessToken is the body returned from the token endpoint.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// ToAccessToken wraps a raw encoded token for the client. It only checks
// the compact JWS shape, not the signature.
func ToAccessToken(raw string, expiresIn time.Duration) (*AccessToken, error) {
	if err := ValidateFormat(raw); err != nil {
		return nil, err
	}
	return &AccessToken{
		AccessToken: raw,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int(expiresIn.Seconds()),
	}, nil
}

// ValidateFormat checks that raw is three non-empty dot separated segments.
func ValidateFormat(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("access token is required")
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return errors.New("invalid token format: must be a valid JWT")
	}
	for i, part := range parts {
		if len(part) == 0 {
			return errors.Errorf("invalid token format: part %d is empty", i+1)
		}
	}
	return nil
}
