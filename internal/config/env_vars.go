package config

import (
	"fmt"
	"strings"
)

type EnvVars struct {
	Env           string   `env:"ENV" envDefault:"DEV"`
	AppName       string   `env:"APP_NAME" envDefault:"Go API Skeleton"`
	Port          string   `env:"PORT" envDefault:"8000"`
	APIPrefix     string   `env:"API_URL_PREFIX" envDefault:"/api"`
	LogLevel      string   `env:"LOG_LEVEL"`
	TrustedHosts  []string `env:"TRUSTED_HOSTS" envSeparator:"," envDefault:"*"`
	AdminEmail    string   `env:"ADMIN_EMAIL"`
	AdminPassword string   `env:"ADMIN_PASSWORD"`
}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8000"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

// GetAPIPrefix returns the route prefix without a trailing slash.
func (e EnvVars) GetAPIPrefix() string {
	prefix := strings.TrimRight(e.APIPrefix, "/")
	if prefix != "" && prefix[0] != '/' {
		prefix = "/" + prefix
	}
	return prefix
}

// GetLogLevel falls back to debug in DEV and info everywhere else.
func (e EnvVars) GetLogLevel() string {
	if e.LogLevel != "" {
		return strings.ToLower(e.LogLevel)
	}
	if e.GetEnv() == "DEV" {
		return "debug"
	}
	return "info"
}

func (e EnvVars) GetTrustedHosts() []string {
	return trimAll(e.TrustedHosts)
}

func (e EnvVars) GetAdminEmail() string {
	return e.AdminEmail
}

func (e EnvVars) GetAdminPassword() string {
	return e.AdminPassword
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
