package router

import (
	"github.com/Lomoncivici/Kyrsach4/app/controllers"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Catalog
	app.Get("/", loggedInMiddleware, controllers.HandleHome)
	app.Get("/search", loggedInMiddleware, controllers.HandleSearch)
	app.Get("/genres", loggedInMiddleware, controllers.HandleGenres)
	app.Get("/content/:id", loggedInMiddleware, controllers.HandleContentDetail)

	// Customer auth
	app.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	app.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	app.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	app.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Password reset: code request, code confirmation, new password
	app.Get("/password-reset", loggedInMiddleware, controllers.HandlePasswordResetRequest)
	app.Post("/password-reset", loggedInMiddleware, controllers.HandlePasswordResetRequest)
	app.Get("/password-reset/confirm", loggedInMiddleware, controllers.HandlePasswordResetConfirm)
	app.Post("/password-reset/confirm", loggedInMiddleware, controllers.HandlePasswordResetConfirm)
	app.Get("/password-reset/new", loggedInMiddleware, controllers.HandlePasswordResetNew)
	app.Post("/password-reset/new", loggedInMiddleware, controllers.HandlePasswordResetNew)
}
