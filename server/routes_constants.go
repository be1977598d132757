package server

// Route path constants
const (
	RouteAuthLogout       = "/auth/logout"
	RouteAuthOAuthLogin   = "/auth/oauth/{provider}/login"
	RouteAdminUserSession = "/admin/users/{id}/sessions"
)

// Query parameters naming the post-login or post-logout destination.
const (
	paramRedirectTo = "redirect_to"
	paramNext       = "next"
)
