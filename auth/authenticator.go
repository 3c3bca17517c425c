package auth

import (
	"context"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
)

// Outcome is the result of checking a set of login credentials.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeWrongPassword
	OutcomeDisabled
	OutcomeAuthenticated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeWrongPassword:
		return "wrong_password"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Result carries the outcome and, for Disabled and Authenticated, the user.
type Result struct {
	Outcome Outcome
	User    *users.User
}

// UserLookup is the part of users.UserRepo the auth layer reads from.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
}

// Authenticator checks an email and password against the user store.
type Authenticator struct {
	users  UserLookup
	hasher users.PasswordHasher
}

func NewAuthenticator(lookup UserLookup, hasher users.PasswordHasher) (*Authenticator, error) {
	if lookup == nil {
		return nil, errors.New("[NewAuthenticator] user lookup is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewAuthenticator] hasher is required")
	}
	return &Authenticator{users: lookup, hasher: hasher}, nil
}

// Authenticate always runs one password comparison, real or dummy, before
// it looks at whether the account exists or is disabled.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (Result, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		a.hasher.DummyVerify()
		return Result{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return Result{}, errors.Wrap(err, "Authenticator.Authenticate GetByEmail")
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return Result{Outcome: OutcomeWrongPassword}, nil
	}
	if !user.IsActive() {
		return Result{Outcome: OutcomeDisabled, User: user}, nil
	}
	return Result{Outcome: OutcomeAuthenticated, User: user}, nil
}
