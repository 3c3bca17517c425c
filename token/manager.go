package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultTTL is the access token lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Settings are fixed at construction; a Manager never reads global config.
type Settings struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// Manager encodes and decodes signed access tokens. It holds no mutable
// state apart from the optional revocation cache, which is synchronised.
type Manager struct {
	signer       Signer
	ttl          time.Duration
	nowFunc      func() time.Time
	revokedCache RevokedTokenCache
}

type ManagerOption func(*Manager)

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithRevokedTokenCache(cache RevokedTokenCache) ManagerOption {
	return func(m *Manager) {
		m.revokedCache = cache
	}
}

// NewManager validates settings through NewHMACSigner. A zero TTL means
// DefaultTTL; a negative one is rejected.
func NewManager(settings Settings, options ...ManagerOption) (*Manager, error) {
	signer, err := NewHMACSigner(settings.Secret, settings.Algorithm)
	if err != nil {
		return nil, err
	}
	if settings.TTL < 0 {
		return nil, errors.Wrap(apperrors.ErrInvalidConfig, "[NewManager] ttl must not be negative")
	}

	m := &Manager{
		signer:  signer,
		ttl:     settings.TTL,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.ttl == 0 {
		m.ttl = DefaultTTL
	}
	if m.revokedCache == nil {
		m.revokedCache = NewInMemoryRevokedTokenCache(m.nowFunc)
	}
	return m, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

type encodeOptions struct {
	ttl time.Duration
}

type EncodeOption func(*encodeOptions)

// WithTTL overrides the configured lifetime for one token.
func WithTTL(ttl time.Duration) EncodeOption {
	return func(o *encodeOptions) {
		o.ttl = ttl
	}
}

// Encode signs the subject and scopes of claims. IssuedAt and ExpiresAt are
// always set from the clock; a token ID is generated when claims has none.
func (m *Manager) Encode(claims Claims, opts ...EncodeOption) (string, error) {
	o := encodeOptions{ttl: m.ttl}
	for _, opt := range opts {
		opt(&o)
	}

	now := m.nowFunc()
	claims.IssuedAt = now
	claims.ExpiresAt = now.Add(o.ttl)
	if claims.ID == "" {
		claims.ID = uuid.New().String()
	}
	return m.signer.Sign(toWire(claims))
}

// Issue encodes a token for subject and wraps it for the client.
func (m *Manager) Issue(subject string, scopes []string, opts ...EncodeOption) (*AccessToken, error) {
	o := encodeOptions{ttl: m.ttl}
	for _, opt := range opts {
		opt(&o)
	}
	raw, err := m.Encode(Claims{Subject: subject, Scopes: scopes}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "Manager.Issue Encode")
	}
	return ToAccessToken(raw, o.ttl)
}

// Decode verifies the algorithm, signature and expiry of raw. Every failure
// is reported as ErrInvalidToken; the reason is only logged.
func (m *Manager) Decode(raw string) (Claims, error) {
	wire := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(raw, wire, m.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(m.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		log.Debug().Err(err).Msg("access token rejected")
		return Claims{}, apperrors.ErrInvalidToken
	}
	return fromWire(wire), nil
}

// IsRevoked reports whether the token ID has been revoked.
func (m *Manager) IsRevoked(jti string) bool {
	return jti != "" && m.revokedCache.IsRevoked(jti)
}

// RevokeAccessToken denylists a valid token until it expires.
func (m *Manager) RevokeAccessToken(raw string) error {
	claims, err := m.Decode(raw)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return errors.Wrap(apperrors.ErrInvalidToken, "token missing jti claim")
	}
	return m.revokedCache.Add(claims.ID, claims.ExpiresAt)
}

// CleanupRevokedTokens removes expired tokens from the revocation cache
func (m *Manager) CleanupRevokedTokens() int {
	removed := m.revokedCache.Cleanup()
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", m.revokedCache.Len()).Msg("Revoked tokens cleaned up")
	}
	return removed
}

// RunRevocationCleanup calls CleanupRevokedTokens every interval until ctx is done.
func (m *Manager) RunRevocationCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CleanupRevokedTokens()
		}
	}
}
