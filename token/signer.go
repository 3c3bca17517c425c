package token

import (
	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/pkg/errors"
)

// Signer is an interface for signing and verifying JWT tokens
type Signer interface {
	// Sign creates a signed JWT token from claims
	Sign(claims jwt.Claims) (string, error)

	// GetVerificationKey returns the key used to check a parsed token's signature
	GetVerificationKey(token *jwt.Token) (any, error)

	// GetSigningMethod returns the JWT signing method used
	GetSigningMethod() jwt.SigningMethod
}

var _ Signer = (*HMACSigner)(nil)

// HMACSigner implements Signer with a shared secret and one HS* algorithm.
type HMACSigner struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewHMACSigner accepts HS256, HS384 or HS512.
func NewHMACSigner(secret, algorithm string) (*HMACSigner, error) {
	if secret == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidConfig, "[NewHMACSigner] secret is required")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrInvalidConfig, "[NewHMACSigner] unsupported algorithm %q", algorithm)
	}
	return &HMACSigner{
		secret: []byte(secret),
		method: method,
	}, nil
}

// Sign returns the compact serialisation of claims.
func (h *HMACSigner) Sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(h.method, claims)
	signedToken, err := token.SignedString(h.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signedToken, nil
}

func (h *HMACSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != h.method.Alg() {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwt.SigningMethod {
	return h.method
}
