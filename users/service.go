package users

import (
	"context"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Service is the account management layer on top of a UserRepo. It owns
// input validation and password hashing so stores only see hashes.
type Service struct {
	repo        UserRepo
	hasher      PasswordHasher
	validScopes Scopes
}

// NewService fails when any collaborator is missing. validScopes is the
// allow-list every create and update is checked against.
func NewService(repo UserRepo, hasher PasswordHasher, validScopes Scopes) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[NewService] repo is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewService] hasher is required")
	}
	if len(validScopes) == 0 {
		return nil, errors.New("[NewService] at least one valid scope is required")
	}
	return &Service{
		repo:        repo,
		hasher:      hasher,
		validScopes: NewScopes(validScopes...),
	}, nil
}

func (s *Service) ValidScopes() Scopes {
	return append(Scopes(nil), s.validScopes...)
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// CreateUser validates c, hashes its password and stores the new account.
func (s *Service) CreateUser(ctx context.Context, c UserCreate) (*User, error) {
	if err := c.Validate(s.validScopes); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(c.Password)
	if err != nil {
		return nil, errors.Wrap(err, "Service.CreateUser Hash")
	}
	user, err := s.repo.Create(ctx, NewUser(c, hash))
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user created")
	return user, nil
}

// GetOrCreateUser returns the account for c.Email, creating it when absent.
// The flag reports whether this call created it.
func (s *Service) GetOrCreateUser(ctx context.Context, c UserCreate) (*User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, c.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	created, err := s.CreateUser(ctx, c)
	if errors.Is(err, apperrors.ErrDuplicateEmail) {
		// lost a race with a concurrent create
		existing, err = s.repo.GetByEmail(ctx, c.Email)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// UpdateUser applies the non-nil fields of u.
func (s *Service) UpdateUser(ctx context.Context, u UserUpdate) (*User, error) {
	if err := u.Validate(s.validScopes); err != nil {
		return nil, err
	}
	patch := UserPatch{
		Name:      u.Name,
		Scopes:    u.Scopes,
		Disabled:  u.Disabled,
		Superuser: u.Superuser,
	}
	if u.Password != nil {
		hash, err := s.hasher.Hash(*u.Password)
		if err != nil {
			return nil, errors.Wrap(err, "Service.UpdateUser Hash")
		}
		patch.PasswordHash = &hash
	}
	if patch.IsEmpty() {
		return s.repo.GetByEmail(ctx, u.Email)
	}
	return s.repo.Update(ctx, u.Email, patch)
}

// UpdateUserPassword replaces the stored hash with a hash of newPassword.
func (s *Service) UpdateUserPassword(ctx context.Context, user *User, newPassword string) (*User, error) {
	if user == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "Service.UpdateUserPassword")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, errors.Wrap(err, "Service.UpdateUserPassword Hash")
	}
	updated, err := s.repo.UpdatePassword(ctx, user, hash)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", updated.ID).Msg("password changed")
	return updated, nil
}

// DeleteUser removes the account for email and reports whether one existed.
func (s *Service) DeleteUser(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, user)
}
