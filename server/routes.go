package server

import (
	"net/http"

	"github.com/jrsteele09/go-auth-policy/cookies"
	"golang.org/x/oauth2"
)

// RegisterRoutes mounts the logout, admin revocation and OAuth login routes.
// providers maps the {provider} path segment to its OAuth client config.
func (s *Server) RegisterRoutes(mux *http.ServeMux, providers map[string]*oauth2.Config) {
	// GET logout is kept so plain links work; a cross-site GET can therefore end a session.
	mux.HandleFunc("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.standardMiddleware()...))
	mux.HandleFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.standardMiddleware()...))
	mux.HandleFunc("DELETE "+RouteAdminUserSession, ChainMiddleware(s.RevokeUserSessionsHandler(), s.standardMiddleware(s.RequireAdmin)...))
	mux.HandleFunc("GET "+RouteAuthOAuthLogin, ChainMiddleware(s.OAuthLoginHandler(providers), s.standardMiddleware()...))
}

func (s *Server) standardMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chained := []func(http.HandlerFunc) http.HandlerFunc{
		s.LoggingMiddleware,
		cookies.Middleware,
	}
	return append(chained, mw...)
}
