package middleware

import (
	"strings"

	"github.com/Lomoncivici/Kyrsach4/internal/pkg/token"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// APITokenAuth accepts a Bearer token as an alternative to the web session.
// When the token is valid the user context is populated from its claims;
// without either credential the request is rejected with JSON 401.
func APITokenAuth(c *fiber.Ctx) error {
	if usercontext.GetUserContext(c).IsLoggedIn {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return unauthorized(c)
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	claims, err := token.Validate(raw)
	if err != nil {
		return unauthorized(c)
	}

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		UserID:     claims.Subject,
		Login:      claims.Login,
		IsLoggedIn: true,
	})
	return c.Next()
}

// APITokenOptional populates the user context from a Bearer token when one
// is presented but never rejects the request. Endpoints that serve free
// content to anonymous callers use this and decide access per request.
func APITokenOptional(c *fiber.Ctx) error {
	if usercontext.GetUserContext(c).IsLoggedIn {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if claims, err := token.Validate(raw); err == nil {
			c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
				UserID:     claims.Subject,
				Login:      claims.Login,
				IsLoggedIn: true,
			})
		}
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"ok":    false,
		"error": "unauthorized",
	})
}
