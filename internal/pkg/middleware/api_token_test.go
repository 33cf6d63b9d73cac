package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Lomoncivici/Kyrsach4/internal/pkg/token"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

func contextEchoApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", handler, func(c *fiber.Ctx) error {
		return c.JSON(usercontext.GetUserContext(c))
	})
	return app
}

func TestAPITokenOptionalAllowsAnonymous(t *testing.T) {
	app := contextEchoApp(APITokenOptional)

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPITokenOptionalIgnoresBadToken(t *testing.T) {
	app := contextEchoApp(APITokenOptional)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPITokenOptionalPopulatesContext(t *testing.T) {
	signed, err := token.Issue("u1", "alice", time.Now())
	assert.NoError(t, err)

	app := fiber.New()
	app.Get("/whoami", APITokenOptional, func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		assert.True(t, uc.IsLoggedIn)
		assert.Equal(t, "u1", uc.UserID)
		assert.Equal(t, "alice", uc.Login)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAPITokenAuthRejectsAnonymous(t *testing.T) {
	app := contextEchoApp(APITokenAuth)

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
