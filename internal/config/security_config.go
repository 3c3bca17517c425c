package config

import (
	"time"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
)

const (
	minHashCost = 4
	maxHashCost = 31
)

var supportedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

type SecurityConfig interface {
	GetSecretKey() string
	GetJWTAlgorithm() string
	GetAccessTokenTTL() time.Duration
	GetValidScopes() []string
	GetPasswordHashCost() int
}

type Security struct {
	SecretKey                string   `env:"SECRET_KEY"`
	JWTAlgorithm             string   `env:"JWT_ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireMinutes int      `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"10080"`
	ValidScopes              []string `env:"VALID_SCOPES" envSeparator:"," envDefault:"unauthorized,users/whoami,logs/read"`
	PasswordHashCost         int      `env:"PASSWORD_HASH_COST" envDefault:"13"`
}

func (s Security) GetSecretKey() string {
	return s.SecretKey
}

func (s Security) GetJWTAlgorithm() string {
	return s.JWTAlgorithm
}

func (s Security) GetAccessTokenTTL() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes) * time.Minute
}

func (s Security) GetValidScopes() []string {
	return trimAll(s.ValidScopes)
}

func (s Security) GetPasswordHashCost() int {
	return s.PasswordHashCost
}

func (s Security) Validate() error {
	if s.SecretKey == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "SECRET_KEY is required")
	}
	if _, ok := supportedAlgorithms[s.JWTAlgorithm]; !ok {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "JWT_ALGORITHM %q is not supported", s.JWTAlgorithm)
	}
	if s.AccessTokenExpireMinutes <= 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if s.PasswordHashCost < minHashCost || s.PasswordHashCost > maxHashCost {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "PASSWORD_HASH_COST must be between %d and %d", minHashCost, maxHashCost)
	}
	if len(s.GetValidScopes()) == 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "VALID_SCOPES is empty")
	}
	return nil
}
