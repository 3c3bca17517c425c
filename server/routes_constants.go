package server

// Route path constants, relative to the API prefix unless noted.
const (
	RoutePublic         = "/public/"
	RouteToken          = "/token"
	RouteLogout         = "/logout"
	RouteWhoAmI         = "/whoami"
	RouteWhoAmIPassword = "/whoami/password"

	// Not prefixed
	RouteSettings = "/settings"
)
