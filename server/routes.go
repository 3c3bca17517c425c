package server

import (
	"github.com/jrsteele09/go-api-skeleton/users"
)

func (s *Server) initRoutes() {
	// Public
	s.RegisterRouteHandler("GET "+s.path(RoutePublic), ChainMiddleware(s.PublicHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+s.path(RouteToken), ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))

	// Bearer token required
	s.RegisterRouteHandler("GET "+s.path(RouteWhoAmI), ChainMiddleware(s.WhoAmIHandler(), s.APIMiddleware(s.RequireAuth(users.ScopeWhoAmI))...))
	s.RegisterRouteHandler("PATCH "+s.path(RouteWhoAmIPassword), ChainMiddleware(s.ChangePasswordHandler(), s.APIMiddleware(s.RequireAuth(users.ScopeWhoAmI))...))
	s.RegisterRouteHandler("POST "+s.path(RouteLogout), ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireAuth())...))

	// CORS preflight for everything under the prefix
	s.RegisterRouteHandler("OPTIONS "+s.path("/"), ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteSettings, ChainMiddleware(s.SettingsHandler(), s.APIMiddleware()...))
}
