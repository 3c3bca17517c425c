package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what an access token asserts: who it was issued to, the scopes
// it carries and when it stops being valid.
type Claims struct {
	Subject   string
	Scopes    []string
	ExpiresAt time.Time
	IssuedAt  time.Time
	ID        string // jti, used for revocation
}

// accessClaims is the wire form: {"sub", "scopes", "exp", "iat", "jti"}.
type accessClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

func toWire(c Claims) *accessClaims {
	scopes := c.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return &accessClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.Subject,
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(c.IssuedAt),
			ID:        c.ID,
		},
	}
}

func fromWire(w *accessClaims) Claims {
	c := Claims{
		Subject: w.Subject,
		Scopes:  w.Scopes,
		ID:      w.ID,
	}
	if c.Scopes == nil {
		c.Scopes = []string{}
	}
	if w.ExpiresAt != nil {
		c.ExpiresAt = w.ExpiresAt.Time.UTC()
	}
	if w.IssuedAt != nil {
		c.IssuedAt = w.IssuedAt.Time.UTC()
	}
	return c
}
