package middleware

import (
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/constants"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth ensures a logged-in customer session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Redirect(constants.LoginRoute, fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireEmployee ensures a logged-in back-office session; redirects to the
// staff login otherwise.
func RequireEmployee(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsEmployee {
		return c.Redirect(constants.AdminRoute+"/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireRole ensures the employee session carries one of the given roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		if !uc.IsEmployee {
			return c.Redirect(constants.AdminRoute+"/login", fiber.StatusSeeOther)
		}
		for _, role := range roles {
			if uc.HasRole(role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).SendString("forbidden")
	}
}

// RequireAPISessionAuth ensures a logged-in session for API routes and
// returns JSON 401 instead of a redirect.
func RequireAPISessionAuth(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"ok":    false,
			"error": "login required",
		})
	}
	return c.Next()
}
