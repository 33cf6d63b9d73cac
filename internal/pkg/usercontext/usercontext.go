package usercontext

import "github.com/gofiber/fiber/v2"

// Locals keys shared between the session middleware and controllers.
const (
	KeyUserContext   = "USER_CONTEXT"
	KeyFromProtected = "from_protected"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	UserID     string   `json:"user_id"`
	Login      string   `json:"login"`
	Email      string   `json:"email"`
	EmployeeID string   `json:"employee_id"`
	IsLoggedIn bool     `json:"is_logged_in"`
	IsEmployee bool     `json:"is_employee"`
	Roles      []string `json:"roles"`
}

// HasRole reports whether the context carries the given employee role.
func (uc UserContext) HasRole(role string) bool {
	if !uc.IsEmployee {
		return false
	}
	for _, r := range uc.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(KeyUserContext); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or empty string if not logged in
func GetUserID(c *fiber.Ctx) string {
	return GetUserContext(c).UserID
}

// GetLogin returns the current user's login, or empty string if not logged in
func GetLogin(c *fiber.Ctx) string {
	return GetUserContext(c).Login
}

// HasRole reports whether the current employee session carries the given role.
func HasRole(c *fiber.Ctx, role string) bool {
	return GetUserContext(c).HasRole(role)
}
