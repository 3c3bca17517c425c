package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-api-skeleton/auth"
	"github.com/jrsteele09/go-api-skeleton/internal/config"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Config is the part of config.Config the HTTP layer reads.
type Config interface {
	config.EnvConfig
	config.CorsConfig
	Redacted() map[string]any
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	prefix string
	mux    *http.ServeMux
	routes []string
	config Config
	auth   *auth.Service
	users  *users.Service
}

func New(ctx context.Context, cfg Config, authService *auth.Service, userService *users.Service) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if authService == nil {
		return nil, errors.New("[Server New] auth service is required")
	}
	if userService == nil {
		return nil, errors.New("[Server New] user service is required")
	}

	s := &Server{
		env:    cfg.GetEnv(),
		prefix: cfg.GetAPIPrefix(),
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   authService,
		users:  userService,
	}

	if err := s.InitialiseSystem(ctx); err != nil {
		return nil, errors.Wrap(err, "[Server New] failed to initialise the system")
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

// Routes returns the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	color, ok := methodColors[method]
	if !ok {
		color = Gray
	}
	log.Debug().Msgf("[%s%s%s] %s", color, paddedMethod, ResetColor, path)
}

// path joins the API prefix and a route constant.
func (s *Server) path(route string) string {
	return s.prefix + route
}
