package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Lomoncivici/Kyrsach4/internal/pkg/middleware"
)

// RegisterHandlers wires the v1 endpoints onto the given router group.
// Catalog reads are public; everything under /me and all mutations require
// a session or bearer token.
func RegisterHandlers(r fiber.Router, s *APIServer) {
	r.Get("/ping", s.GetPing)
	r.Post("/auth/token", s.PostAuthToken)

	r.Get("/home", s.GetHome)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/catalog/:id", s.GetContent)

	// Free content plays without an account, so the episode-source route
	// takes optional credentials and leaves the decision to the handler.
	// Can-watch and series-tree answer anonymous callers the same way.
	r.Get("/catalog/:id/can-watch", middleware.APITokenOptional, s.GetCanWatch)
	r.Get("/catalog/:id/series-tree", middleware.APITokenOptional, s.GetSeriesTree)
	r.Get("/catalog/:id/seasons/:season/episodes/:episode/source", middleware.APITokenOptional, s.GetEpisodeSource)

	authed := r.Group("", middleware.APITokenAuth)
	authed.Get("/catalog/:id/source", s.GetContentSource)

	authed.Post("/catalog/:id/rating", s.PostRating)
	authed.Get("/catalog/:id/favorite", s.GetFavoriteStatus)
	authed.Post("/catalog/:id/favorite", s.PostFavoriteToggle)
	authed.Get("/catalog/:id/watchlist", s.GetWatchlistStatus)
	authed.Post("/catalog/:id/watchlist", s.PostWatchlistToggle)
	authed.Get("/catalog/:id/progress", s.GetProgress)
	authed.Post("/catalog/:id/progress", s.PostProgress)
	authed.Post("/catalog/:id/purchase", s.PostPurchase)

	authed.Get("/me", s.GetMe)
	authed.Get("/me/subscriptions", s.GetMySubscriptions)
	authed.Post("/me/subscriptions", s.PostSubscribe)
	authed.Post("/me/subscriptions/cancel", s.PostSubscriptionCancel)
	authed.Get("/me/purchases", s.GetMyPurchases)
	authed.Get("/me/payments", s.GetMyPayments)
	authed.Get("/me/favorites", s.GetMyFavorites)
	authed.Get("/me/ratings", s.GetMyRatings)
	authed.Get("/me/watchlist", s.GetMyWatchlist)
	authed.Get("/me/history", s.GetMyHistory)
	authed.Get("/me/continue-watching", s.GetMyContinueWatching)
}
