package apiv1

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandlersRouteTable(t *testing.T) {
	app := fiber.New()
	RegisterHandlers(app.Group("/api/v1"), NewAPIServer())

	want := []struct{ method, path string }{
		{fiber.MethodGet, "/api/v1/home"},
		{fiber.MethodGet, "/api/v1/catalog/:id/can-watch"},
		{fiber.MethodGet, "/api/v1/catalog/:id/series-tree"},
		{fiber.MethodGet, "/api/v1/catalog/:id/seasons/:season/episodes/:episode/source"},
		{fiber.MethodGet, "/api/v1/catalog/:id/progress"},
		{fiber.MethodPost, "/api/v1/catalog/:id/purchase"},
		{fiber.MethodGet, "/api/v1/me/ratings"},
		{fiber.MethodGet, "/api/v1/me/payments"},
		{fiber.MethodPost, "/api/v1/me/subscriptions"},
	}

	routes := app.GetRoutes()
	for _, w := range want {
		found := false
		for _, rt := range routes {
			if rt.Method == w.method && rt.Path == w.path {
				found = true
				break
			}
		}
		assert.True(t, found, "%s %s not registered", w.method, w.path)
	}
}
