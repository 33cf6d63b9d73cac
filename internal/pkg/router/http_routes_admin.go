package router

import (
	"github.com/Lomoncivici/Kyrsach4/app/controllers"
	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	// Staff login sits outside the protected group.
	app.Get("/admin/login", loggedInMiddleware, controllers.HandleAdminLogin)
	app.Post("/admin/login", loggedInMiddleware, controllers.HandleAdminLogin)
	app.Post("/admin/logout", controllers.HandleAdminLogout)

	adminGroup := app.Group("/admin", middleware.RequireEmployee)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// Catalog management
	adminGroup.Get("/content", controllers.HandleAdminContentList)
	adminGroup.Get("/content/new", controllers.HandleAdminContentNew)
	adminGroup.Post("/content/new", controllers.HandleAdminContentNew)
	adminGroup.Get("/content/:id", controllers.HandleAdminContentEdit)
	adminGroup.Post("/content/:id", controllers.HandleAdminContentEdit)
	adminGroup.Post("/content/:id/delete", controllers.HandleAdminContentDelete)
	adminGroup.Post("/content/:id/seasons", controllers.HandleAdminSeasonCreate)
	adminGroup.Post("/content/:id/episodes", controllers.HandleAdminEpisodeCreate)
	adminGroup.Get("/genres", controllers.HandleAdminGenres)
	adminGroup.Post("/genres", controllers.HandleAdminGenreCreate)
	adminGroup.Post("/genres/:id/delete", controllers.HandleAdminGenreDelete)

	// Customers
	adminGroup.Get("/users", controllers.HandleAdminUsers)
	adminGroup.Post("/users", controllers.HandleAdminUserCreate)
	adminGroup.Get("/users/:id", controllers.HandleAdminUserDetail)
	adminGroup.Post("/users/:id", controllers.HandleAdminUserEdit)
	adminGroup.Post("/users/:id/toggle-active", controllers.HandleAdminUserToggleActive)
	adminGroup.Post("/users/:id/reset-password", controllers.HandleAdminUserResetPassword)
	adminGroup.Post("/users/:id/delete", controllers.HandleAdminUserDelete)
	adminGroup.Post("/users/:id/subscriptions", controllers.HandleAdminSubscriptionGrant)
	adminGroup.Post("/users/:id/purchases", controllers.HandleAdminPurchaseGrant)

	// Subscriptions and plans
	adminGroup.Get("/plans", controllers.HandleAdminPlans)
	adminGroup.Post("/plans", controllers.HandleAdminPlans)
	adminGroup.Post("/plans/:id", controllers.HandleAdminPlanEdit)
	adminGroup.Get("/subscriptions", controllers.HandleAdminSubscriptions)
	adminGroup.Post("/subscriptions/:id/extend", controllers.HandleAdminSubscriptionExtend)
	adminGroup.Post("/subscriptions/:id/edit", controllers.HandleAdminSubscriptionEdit)
	adminGroup.Post("/subscriptions/:id/delete", controllers.HandleAdminSubscriptionDelete)

	// Money
	adminGroup.Get("/payments", controllers.HandleAdminPayments)
	adminGroup.Post("/payments/:id/refund", controllers.HandleAdminPaymentRefund)
	adminGroup.Get("/purchases", controllers.HandleAdminPurchases)
	adminGroup.Post("/purchases/:id/delete", controllers.HandleAdminPurchaseDelete)

	// Analytics: ANALYST or ADMIN
	analytics := adminGroup.Group("/analytics", middleware.RequireRole(models.RoleAdmin, models.RoleAnalyst))
	analytics.Get("/", controllers.HandleAdminAnalytics)
	analytics.Get("/export", controllers.HandleAdminAnalyticsExport)

	// Staff accounts: ADMIN only
	employees := adminGroup.Group("/employees", middleware.RequireRole(models.RoleAdmin))
	employees.Get("/", controllers.HandleAdminEmployees)
	employees.Post("/", controllers.HandleAdminEmployees)
	employees.Post("/:id", controllers.HandleAdminEmployeeEdit)
	employees.Post("/:id/delete", controllers.HandleAdminEmployeeDelete)
}
