package config

import (
	"net/url"

	"github.com/caarlos0/env/v11"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
)

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAPIPrefix() string
	GetLogLevel() string
	GetTrustedHosts() []string
	GetAdminEmail() string
	GetAdminPassword() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// Config is loaded once at startup and never mutated afterwards.
type Config struct {
	EnvVars
	Cors
	Security
	Database
}

var (
	_ EnvConfig      = (*Config)(nil)
	_ CorsConfig     = (*Config)(nil)
	_ SecurityConfig = (*Config)(nil)
)

// New parses the process environment into a Config and validates it.
func New() (*Config, error) {
	return Parse(env.Options{})
}

// Parse is New with explicit parser options, e.g. a fixed Environment map in tests.
func Parse(opts env.Options) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "parse env: %s", err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports configuration that must stop the process from starting.
func (c *Config) Validate() error {
	if err := c.Security.Validate(); err != nil {
		return err
	}
	if c.DatabaseURL == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidConfig, "DATABASE_URL is empty")
	}
	return nil
}

const redacted = "**********"

// Redacted returns the effective settings keyed by environment variable, with
// secrets masked.
func (c *Config) Redacted() map[string]any {
	adminPassword := ""
	if c.AdminPassword != "" {
		adminPassword = redacted
	}
	return map[string]any{
		"ENV":                         c.GetEnv(),
		"APP_NAME":                    c.GetAppName(),
		"PORT":                        c.GetPort(),
		"API_URL_PREFIX":              c.GetAPIPrefix(),
		"LOG_LEVEL":                   c.GetLogLevel(),
		"TRUSTED_HOSTS":               c.GetTrustedHosts(),
		"ADMIN_EMAIL":                 c.GetAdminEmail(),
		"ADMIN_PASSWORD":              adminPassword,
		"CORS_ORIGINS":                c.GetAllowedOrigins().String(),
		"CORS_METHODS":                c.GetAllowedMethods(),
		"CORS_HEADERS":                c.GetAllowedHeaders(),
		"SECRET_KEY":                  redacted,
		"JWT_ALGORITHM":               c.GetJWTAlgorithm(),
		"ACCESS_TOKEN_EXPIRE_MINUTES": c.AccessTokenExpireMinutes,
		"VALID_SCOPES":                c.GetValidScopes(),
		"PASSWORD_HASH_COST":          c.GetPasswordHashCost(),
		"DATABASE_URL":                redactURL(c.GetDatabaseURL()),
	}
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redacted)
	}
	return u.String()
}
