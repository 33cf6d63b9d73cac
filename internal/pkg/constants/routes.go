package constants

// Static route constants
const (
	HomeRoute    = "/"
	LoginRoute   = "/login"
	ProfileRoute = "/profile"
	AdminRoute   = "/admin"
)
