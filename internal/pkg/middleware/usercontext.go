package middleware

import (
	"strings"

	"github.com/Lomoncivici/Kyrsach4/app/controllers"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/session"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware sets up the complete user context for every request.
// This centralizes session handling so controllers only read the context.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{})
		c.Locals(controllers.FROM_PROTECTED, false)
		return c.Next()
	}

	userID := sess.Get(controllers.USER_ID)
	employeeID := sess.Get(controllers.EMPLOYEE_ID)
	if userID == nil && employeeID == nil {
		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{})
		c.Locals(controllers.FROM_PROTECTED, false)
		return c.Next()
	}

	userCtx := usercontext.UserContext{
		Login: session.GetSessionValue(c, controllers.USER_NAME),
		Email: session.GetSessionValue(c, controllers.USER_EMAIL),
	}
	if userID != nil {
		if id, ok := userID.(string); ok && id != "" {
			userCtx.UserID = id
			userCtx.IsLoggedIn = true
		}
	}
	if employeeID != nil {
		if id, ok := employeeID.(string); ok && id != "" {
			userCtx.EmployeeID = id
			userCtx.IsEmployee = true
			if roles := session.GetSessionValue(c, controllers.EMPLOYEE_ROLES); roles != "" {
				userCtx.Roles = strings.Split(roles, ",")
			}
		}
	}

	c.Locals(usercontext.KeyUserContext, userCtx)
	c.Locals(controllers.FROM_PROTECTED, userCtx.IsLoggedIn || userCtx.IsEmployee)

	return c.Next()
}
