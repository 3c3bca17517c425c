package server

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-api-skeleton/internal/utils"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/rs/zerolog/log"
)

const DefaultSuperAdminName = "System Administrator"

// InitialiseSystem makes sure the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD exists. An existing account is left untouched.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	email := s.config.GetAdminEmail()
	password := s.config.GetAdminPassword()
	if email == "" || password == "" {
		log.Debug().Msg("no admin credentials configured, skipping bootstrap")
		return nil
	}

	admin, created, err := s.users.GetOrCreateUser(ctx, users.UserCreate{
		Email:     email,
		Name:      DefaultSuperAdminName,
		Password:  password,
		Scopes:    s.users.ValidScopes(),
		Disabled:  utils.Ptr(false),
		Superuser: true,
	})
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap admin: %w", err)
	}

	if created {
		log.Info().
			Str("email", admin.Email).
			Str("scopes", admin.Scopes.String()).
			Msg("admin account created")
	} else {
		log.Info().Str("email", admin.Email).Msg("admin account already exists")
	}
	return nil
}
