package auth

import (
	"context"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/token"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// TokenDecoder is satisfied by *token.Manager.
type TokenDecoder interface {
	Decode(raw string) (token.Claims, error)
	IsRevoked(jti string) bool
}

// Authorizer turns a bearer token into the user it was issued to, provided
// the token carries every required scope.
type Authorizer struct {
	decoder   TokenDecoder
	users     UserLookup
	validator *ClaimsValidator
}

func NewAuthorizer(decoder TokenDecoder, lookup UserLookup, validScopes users.Scopes) (*Authorizer, error) {
	if decoder == nil {
		return nil, errors.New("[NewAuthorizer] token decoder is required")
	}
	if lookup == nil {
		return nil, errors.New("[NewAuthorizer] user lookup is required")
	}
	if len(validScopes) == 0 {
		return nil, errors.New("[NewAuthorizer] valid scopes are required")
	}
	return &Authorizer{
		decoder:   decoder,
		users:     lookup,
		validator: NewClaimsValidator(validScopes),
	}, nil
}

// Authorize fails with ErrUnauthenticated for anything wrong with the token
// or its subject, and with ErrInsufficientPrivilege when a required scope is
// missing from the token. A disabled account fails with ErrUserDisabled.
func (a *Authorizer) Authorize(ctx context.Context, raw string, required ...string) (*users.User, error) {
	claims, err := a.decoder.Decode(raw)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := a.validator.Validate(claims); err != nil {
		log.Debug().Err(err).Str("sub", claims.Subject).Msg("token claims rejected")
		return nil, apperrors.ErrUnauthenticated
	}
	if a.decoder.IsRevoked(claims.ID) {
		log.Debug().Str("jti", claims.ID).Msg("revoked token presented")
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := a.users.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, errors.Wrap(err, "Authorizer.Authorize GetByEmail")
	}

	// Scopes are taken from the token, not the stored user.
	if missing := users.Scopes(claims.Scopes).Missing(required...); len(missing) > 0 {
		log.Debug().Str("sub", claims.Subject).Strs("missing", missing).Msg("insufficient scopes")
		return nil, apperrors.ErrInsufficientPrivilege
	}
	if !user.IsActive() {
		return nil, apperrors.ErrUserDisabled
	}
	return user, nil
}

// AuthorizeHeader applies ParseBearerHeader before Authorize.
func (a *Authorizer) AuthorizeHeader(ctx context.Context, header string, required ...string) (*users.User, error) {
	raw, err := ParseBearerHeader(header)
	if err != nil {
		return nil, err
	}
	return a.Authorize(ctx, raw, required...)
}
