package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/database"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/subscription"
)

// HandleAdminPlans lists plans and creates new ones.
func HandleAdminPlans(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodGet {
		plans, err := repos.SubscriptionAdmin.ListPlans()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "plan listing failed")
		}
		return c.Render("admin/plans", viewData(c, "Тарифы", fiber.Map{
			"Plans": plans,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	plan := &models.SubscriptionPlan{
		Code:         strings.TrimSpace(c.FormValue("code")),
		Name:         strings.TrimSpace(c.FormValue("name")),
		PeriodMonths: formInt(c, "period_months", 1),
		Price:        formFloat(c, "price", 0),
		IsActive:     c.FormValue("is_active") != "0",
	}
	if err := plan.Validate(); err != nil {
		fm["message"] = "Проверьте поля тарифа"

		return flash.WithError(c, fm).Redirect("/admin/plans")
	}
	if err := repos.SubscriptionAdmin.CreatePlan(plan); err != nil {
		fm["message"] = "Тариф с таким кодом уже существует"

		return flash.WithError(c, fm).Redirect("/admin/plans")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Тариф создан",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/plans")
}

// HandleAdminPlanEdit updates or deactivates a plan.
func HandleAdminPlanEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	plan, err := repos.SubscriptionAdmin.GetPlan(c.Params("id"))
	if err != nil {
		fm["message"] = "Тариф не найден"

		return flash.WithError(c, fm).Redirect("/admin/plans")
	}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		plan.Name = name
	}
	plan.PeriodMonths = formInt(c, "period_months", plan.PeriodMonths)
	plan.Price = formFloat(c, "price", plan.Price)
	plan.IsActive = c.FormValue("is_active") != "0"

	if err := repos.SubscriptionAdmin.UpdatePlan(plan); err != nil {
		fm["message"] = "Не удалось сохранить тариф"

		return flash.WithError(c, fm).Redirect("/admin/plans")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Тариф обновлён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/plans")
}

// HandleAdminSubscriptions lists all customer subscriptions.
func HandleAdminSubscriptions(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	page, offset, limit := pagination(c, adminPageSize)
	subs, err := repos.SubscriptionAdmin.List(offset, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "subscription listing failed")
	}
	total, _ := repos.SubscriptionAdmin.Count()

	return c.Render("admin/subscriptions", viewData(c, "Подписки", fiber.Map{
		"Subscriptions": subs,
		"Total":         total,
		"Page":          page,
		"Now":           time.Now(),
	}))
}

// HandleAdminSubscriptionGrant activates a plan for a user without payment.
func HandleAdminSubscriptionGrant(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	userID := c.Params("id")
	planCode := c.FormValue("plan")

	svc := subscription.NewServiceFromDB(database.GetDB())
	if _, err := svc.Activate(userID, planCode, c.FormValue("extend") == "1", time.Now()); err != nil {
		fm["message"] = "Не удалось выдать подписку"

		return flash.WithError(c, fm).Redirect("/admin/users/" + userID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Подписка выдана",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + userID)
}

// HandleAdminSubscriptionExtend pushes the expiry forward by whole months.
func HandleAdminSubscriptionExtend(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	months := formInt(c, "months", 1)
	if months < 1 {
		fm["message"] = "Число месяцев должно быть положительным"

		return flash.WithError(c, fm).Redirect("/admin/subscriptions")
	}

	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := svc.Extend(c.Params("id"), months, time.Now())
	if err != nil {
		fm["message"] = "Подписка не найдена"

		return flash.WithError(c, fm).Redirect("/admin/subscriptions")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Подписка продлена",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + sub.UserID)
}

// HandleAdminSubscriptionEdit changes status and expiry directly.
func HandleAdminSubscriptionEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	sub, err := repos.SubscriptionAdmin.Get(c.Params("id"))
	if err != nil {
		fm["message"] = "Подписка не найдена"

		return flash.WithError(c, fm).Redirect("/admin/subscriptions")
	}

	if status := c.FormValue("status"); status != "" {
		switch status {
		case models.SubscriptionStatusActive, models.SubscriptionStatusCancelled, models.SubscriptionStatusExpired:
			sub.Status = status
		default:
			fm["message"] = "Недопустимый статус"

			return flash.WithError(c, fm).Redirect("/admin/users/" + sub.UserID)
		}
	}
	if raw := c.FormValue("expires_at"); raw != "" {
		expires, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fm["message"] = "Неверный формат даты"

			return flash.WithError(c, fm).Redirect("/admin/users/" + sub.UserID)
		}
		sub.ExpiresAt = &expires
	}

	if err := repos.SubscriptionAdmin.Update(sub); err != nil {
		fm["message"] = "Не удалось сохранить подписку"

		return flash.WithError(c, fm).Redirect("/admin/users/" + sub.UserID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Подписка обновлена",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + sub.UserID)
}

// HandleAdminSubscriptionDelete removes a subscription row.
func HandleAdminSubscriptionDelete(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	sub, err := repos.SubscriptionAdmin.Get(c.Params("id"))
	if err != nil {
		fm["message"] = "Подписка не найдена"

		return flash.WithError(c, fm).Redirect("/admin/subscriptions")
	}

	if err := repos.SubscriptionAdmin.Delete(sub.ID); err != nil {
		fm["message"] = "Не удалось удалить подписку"

		return flash.WithError(c, fm).Redirect("/admin/users/" + sub.UserID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Подписка удалена",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + sub.UserID)
}
