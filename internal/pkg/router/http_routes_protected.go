package router

import (
	"github.com/Lomoncivici/Kyrsach4/app/controllers"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerProtectedRoutes(app *fiber.App) {
	// Playback sources are access-checked in the controllers.
	app.Get("/content/:id/source", middleware.RequireAuth, controllers.HandleContentSource)
	app.Get("/content/:id/seasons/:season/episodes/:episode/source", controllers.HandleEpisodeSource)

	// Interactions
	app.Post("/content/:id/rate", middleware.RequireAuth, controllers.HandleRateContent)
	app.Post("/content/:id/favorite", middleware.RequireAuth, controllers.HandleFavoriteToggle)
	app.Post("/content/:id/watchlist", middleware.RequireAuth, controllers.HandleWatchlistToggle)
	app.Post("/content/:id/progress", middleware.RequireAuth, controllers.HandleSaveProgress)

	// Personal page
	app.Get("/profile", middleware.RequireAuth, controllers.HandleProfile)
	app.Post("/profile", middleware.RequireAuth, controllers.HandleProfileEdit)
	app.Post("/profile/delete", middleware.RequireAuth, controllers.HandleProfileDelete)

	// Billing
	app.Get("/subscribe", middleware.RequireAuth, controllers.HandleSubscribe)
	app.Post("/subscribe", middleware.RequireAuth, controllers.HandleSubscribe)
	app.Post("/subscription/cancel", middleware.RequireAuth, controllers.HandleSubscriptionCancel)
	app.Get("/buy/:id", middleware.RequireAuth, controllers.HandlePurchase)
	app.Post("/buy/:id", middleware.RequireAuth, controllers.HandlePurchase)
}
