package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/bank"
)

const adminPageSize = 50

// HandleAdminDashboard shows headline counts plus the bank service status.
func HandleAdminDashboard(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	users, _ := repos.User.Count()
	purchases, _ := repos.Purchase.Count()
	payments, _ := repos.Payment.Count()
	subscriptions, _ := repos.SubscriptionAdmin.Count()
	revenue30d, _ := repos.Payment.SumPaidSince(time.Now().AddDate(0, 0, -30))

	bankUp := bank.NewClientFromEnv().HealthCheck(c.Context())

	return c.Render("admin/dashboard", viewData(c, "Панель управления", fiber.Map{
		"UserCount":         users,
		"PurchaseCount":     purchases,
		"PaymentCount":      payments,
		"SubscriptionCount": subscriptions,
		"Revenue30d":        revenue30d,
		"BankUp":            bankUp,
	}))
}

// HandleAdminUsers lists or searches customer accounts.
func HandleAdminUsers(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	query := c.Query("q")
	var users any
	var err error
	if query != "" {
		users, err = repos.User.Search(query)
	} else {
		_, offset, limit := pagination(c, adminPageSize)
		users, err = repos.User.List(offset, limit)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "user listing failed")
	}

	total, _ := repos.User.Count()

	return c.Render("admin/users", viewData(c, "Пользователи", fiber.Map{
		"Users": users,
		"Total": total,
		"Query": query,
	}))
}

// HandleAdminUserDetail shows one account with its subscriptions and purchases.
func HandleAdminUserDetail(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	user, err := repos.User.GetByID(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	subs, _ := repos.SubscriptionAdmin.ListUserSubscriptions(user.ID)
	purchases, _ := repos.Purchase.ListByUser(user.ID)
	plans, _ := repos.SubscriptionAdmin.ListPlans()

	return c.Render("admin/user_detail", viewData(c, "Пользователь "+user.Login, fiber.Map{
		"Account":       user,
		"Subscriptions": subs,
		"Purchases":     purchases,
		"Plans":         plans,
		"Now":           time.Now(),
	}))
}

// HandleAdminUserToggleActive blocks or unblocks an account.
func HandleAdminUserToggleActive(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	user, err := repos.User.GetByID(c.Params("id"))
	if err != nil {
		fm["message"] = "Пользователь не найден"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	user.IsActive = !user.IsActive
	if err := repos.User.Update(user); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/admin/users/" + user.ID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Статус аккаунта обновлён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + user.ID)
}

// HandleAdminPayments lists payment records, newest first.
func HandleAdminPayments(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	page, offset, limit := pagination(c, adminPageSize)
	payments, err := repos.Payment.List(offset, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "payment listing failed")
	}
	total, _ := repos.Payment.Count()

	return c.Render("admin/payments", viewData(c, "Платежи", fiber.Map{
		"Payments": payments,
		"Total":    total,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
	}))
}

// HandleAdminPurchases lists pay-per-view purchases.
func HandleAdminPurchases(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	page, offset, limit := pagination(c, adminPageSize)
	purchases, err := repos.Purchase.List(offset, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "purchase listing failed")
	}
	total, _ := repos.Purchase.Count()

	return c.Render("admin/purchases", viewData(c, "Покупки", fiber.Map{
		"Purchases": purchases,
		"Total":     total,
		"Page":      page,
	}))
}

// HandleAdminUserDelete removes a customer account.
func HandleAdminUserDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	if err := repository.GetGlobalRepositories().User.Delete(c.Params("id")); err != nil {
		fm["message"] = "Не удалось удалить пользователя"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Пользователь удалён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users")
}

// HandleAdminUserResetPassword sets a new password for a customer account.
func HandleAdminUserResetPassword(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	user, err := repos.User.GetByID(c.Params("id"))
	if err != nil {
		fm["message"] = "Пользователь не найден"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	password := c.FormValue("password")
	if len(password) < 6 {
		fm["message"] = "Пароль слишком короткий"

		return flash.WithError(c, fm).Redirect("/admin/users/" + user.ID)
	}
	if err := user.SetPassword(password); err != nil {
		fm["message"] = "Не удалось сохранить пароль"

		return flash.WithError(c, fm).Redirect("/admin/users/" + user.ID)
	}
	if err := repos.User.Update(user); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/admin/users/" + user.ID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Пароль обновлён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + user.ID)
}

// HandleAdminPurchaseGrant creates a purchase row without payment.
func HandleAdminPurchaseGrant(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	userID := c.Params("id")

	fm := fiber.Map{
		"type": "error",
	}

	contentID := c.FormValue("content_id")
	if _, err := repos.Content.GetByID(contentID); err != nil {
		fm["message"] = "Контент не найден"

		return flash.WithError(c, fm).Redirect("/admin/users/" + userID)
	}

	if err := repos.Purchase.Create(&models.Purchase{UserID: userID, ContentID: contentID}); err != nil {
		fm["message"] = "Не удалось выдать покупку"

		return flash.WithError(c, fm).Redirect("/admin/users/" + userID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Покупка выдана",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + userID)
}

// HandleAdminPurchaseDelete revokes a purchase.
func HandleAdminPurchaseDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	if err := repository.GetGlobalRepositories().Purchase.Delete(c.Params("id")); err != nil {
		fm["message"] = "Не удалось удалить покупку"

		return flash.WithError(c, fm).Redirect("/admin/purchases")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Покупка удалена",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/purchases")
}

// HandleAdminPaymentRefund marks a paid payment as refunded.
func HandleAdminPaymentRefund(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	payment, err := repos.Payment.GetByID(c.Params("id"))
	if err != nil {
		fm["message"] = "Платёж не найден"

		return flash.WithError(c, fm).Redirect("/admin/payments")
	}
	if payment.Status != models.PaymentStatusPaid {
		fm["message"] = "Вернуть можно только оплаченный платёж"

		return flash.WithError(c, fm).Redirect("/admin/payments")
	}

	payment.Status = models.PaymentStatusRefunded
	if err := repos.Payment.Update(payment); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/admin/payments")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Платёж возвращён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/payments")
}

// HandleAdminUserCreate registers a customer account from the back office.
func HandleAdminUserCreate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	login := c.FormValue("login")
	password := c.FormValue("password")
	if login == "" || len(password) < 6 {
		fm["message"] = "Нужны логин и пароль не короче 6 символов"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}
	if exists, err := repos.User.LoginExists(login); err != nil || exists {
		fm["message"] = "Логин уже занят"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	user := &models.User{Login: login, Phone: c.FormValue("phone"), IsActive: true}
	if email := c.FormValue("email"); email != "" {
		user.Email = &email
	}
	if err := user.SetPassword(password); err != nil {
		fm["message"] = "Не удалось сохранить пароль"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}
	if err := repos.User.Create(user); err != nil {
		fm["message"] = "Не удалось создать пользователя"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Пользователь создан",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + user.ID)
}

// HandleAdminUserEdit updates contact details of a customer account.
func HandleAdminUserEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	user, err := repos.User.GetByID(c.Params("id"))
	if err != nil {
		fm["message"] = "Пользователь не найден"

		return flash.WithError(c, fm).Redirect("/admin/users")
	}

	if login := c.FormValue("login"); login != "" && login != user.Login {
		if exists, err := repos.User.LoginExists(login); err != nil || exists {
			fm["message"] = "Логин уже занят"

			return flash.WithError(c, fm).Redirect("/admin/users/" + user.ID)
		}
		user.Login = login
	}
	if email := c.FormValue("email"); email != "" {
		user.Email = &email
	}
	if phone := c.FormValue("phone"); phone != "" {
		user.Phone = phone
	}

	if err := repos.User.Update(user); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/admin/users/" + user.ID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Профиль обновлён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/users/" + user.ID)
}
