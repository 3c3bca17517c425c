package auth

import (
	"context"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/token"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PasswordUpdater is satisfied by *users.Service.
type PasswordUpdater interface {
	UpdateUserPassword(ctx context.Context, user *users.User, newPassword string) (*users.User, error)
}

// TokenIssuer is satisfied by *token.Manager.
type TokenIssuer interface {
	TokenDecoder
	Issue(subject string, scopes []string, opts ...token.EncodeOption) (*token.AccessToken, error)
	RevokeAccessToken(raw string) error
}

// Deps holds the collaborators of the Service.
type Deps struct {
	Users     users.UserRepo
	Hasher    users.PasswordHasher
	Tokens    TokenIssuer
	Passwords PasswordUpdater
}

// Service is the API the HTTP layer talks to: login, authorize, change
// password and logout.
type Service struct {
	authenticator *Authenticator
	authorizer    *Authorizer
	tokens        TokenIssuer
	passwords     PasswordUpdater
}

// NewService checks that every dependency is set and builds the
// Authenticator and Authorizer from them. validScopes bounds the scopes a
// token may carry.
func NewService(deps Deps, validScopes users.Scopes) (*Service, error) {
	if deps.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if deps.Hasher == nil {
		return nil, errors.New("[NewService] Hasher is required")
	}
	if deps.Tokens == nil {
		return nil, errors.New("[NewService] Tokens is required")
	}
	if deps.Passwords == nil {
		return nil, errors.New("[NewService] Passwords is required")
	}

	authenticator, err := NewAuthenticator(deps.Users, deps.Hasher)
	if err != nil {
		return nil, err
	}
	authorizer, err := NewAuthorizer(deps.Tokens, deps.Users, validScopes)
	if err != nil {
		return nil, err
	}

	return &Service{
		authenticator: authenticator,
		authorizer:    authorizer,
		tokens:        deps.Tokens,
		passwords:     deps.Passwords,
	}, nil
}

// Login exchanges credentials for a bearer token carrying the user's scopes.
// An unknown email and a wrong password both fail with ErrUnauthenticated.
func (s *Service) Login(ctx context.Context, email, password string) (*token.AccessToken, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	result, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case OutcomeAuthenticated:
	case OutcomeDisabled:
		log.Info().Str("email", email).Msg("login refused for disabled user")
		return nil, errors.Wrapf(apperrors.ErrUserDisabled, "user %q", email)
	default:
		log.Info().Str("email", email).Stringer("outcome", result.Outcome).Msg("login failed")
		return nil, apperrors.ErrUnauthenticated
	}

	accessToken, err := s.tokens.Issue(result.User.Email, result.User.Scopes)
	if err != nil {
		return nil, errors.Wrap(err, "Service.Login Issue")
	}
	log.Info().Str("user_id", result.User.ID).Msg("user logged in")
	return accessToken, nil
}

// Authorize resolves the user behind an Authorization header value.
func (s *Service) Authorize(ctx context.Context, header string, required ...string) (*users.User, error) {
	return s.authorizer.AuthorizeHeader(ctx, header, required...)
}

// ChangePassword sets a new password once it matches its confirmation. On a
// mismatch the stored hash is left alone.
func (s *Service) ChangePassword(ctx context.Context, user *users.User, newPassword, confirmation string) (*users.User, error) {
	if user == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if newPassword != confirmation {
		return nil, apperrors.ErrPasswordMismatch
	}
	if newPassword == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidInput, "password is required")
	}
	return s.passwords.UpdateUserPassword(ctx, user, newPassword)
}

// Logout revokes the bearer token in header until it would have expired.
func (s *Service) Logout(ctx context.Context, header string) error {
	raw, err := ParseBearerHeader(header)
	if err != nil {
		return err
	}
	if _, err := s.authorizer.Authorize(ctx, raw); err != nil {
		return err
	}
	if err := s.tokens.RevokeAccessToken(raw); err != nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}
