package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/database"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/session"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/subscription"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/utils"
)

// HandleProfile renders the personal page: subscription state, purchases,
// favorites, watchlist, continue watching and full history.
func HandleProfile(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()
	now := time.Now()

	user, err := repos.User.GetByID(uc.UserID)
	if err != nil {
		return fiber.ErrNotFound
	}

	svc := subscription.NewServiceFromDB(database.GetDB())
	overview, err := svc.GetOverview(uc.UserID, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "subscription service unavailable")
	}

	data := fiber.Map{
		"Account":  user,
		"Overview": overview,
		"Now":      now,
	}
	if user.Email != nil {
		data["AvatarURL"] = utils.GetGravatarURL(*user.Email, 200)
	}
	if overview.Current != nil {
		data["DaysLeft"] = overview.Current.DaysLeftAt(now)
		data["ExpiringSoon"] = overview.Current.IsExpiringSoonAt(now)
		data["CanCancel"] = overview.Current.CanBeCancelledAt(now)
		data["WillBeExtended"] = svc.WillBeExtended(overview.Current, now)
	}

	if purchases, err := repos.Purchase.ListByUser(uc.UserID); err == nil {
		data["Purchases"] = purchases
	}
	if favorites, err := repos.Interaction.ListFavorites(uc.UserID); err == nil {
		data["Favorites"] = favorites
	}
	if watchlist, err := repos.Interaction.ListWatchlist(uc.UserID); err == nil {
		data["Watchlist"] = watchlist
	}
	if cw, err := repos.Interaction.ListContinueWatching(uc.UserID, 12); err == nil {
		data["ContinueWatching"] = cw
	}
	if history, err := repos.Interaction.ListHistory(uc.UserID, 50); err == nil {
		data["History"] = history
	}

	return c.Render("user/profile", viewData(c, "Мой кабинет", data))
}

// HandleProfileEdit updates the contact fields of the account.
func HandleProfileEdit(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	user, err := repos.User.GetByID(uc.UserID)
	if err != nil {
		fm["message"] = "Аккаунт не найден"

		return flash.WithError(c, fm).Redirect("/profile")
	}

	if login := c.FormValue("login"); login != "" && login != user.Login {
		if exists, err := repos.User.LoginExists(login); err != nil || exists {
			fm["message"] = "Логин уже занят"

			return flash.WithError(c, fm).Redirect("/profile")
		}
		user.Login = login
	}
	if email := c.FormValue("email"); email != "" {
		user.Email = &email
	}
	if phone := c.FormValue("phone"); phone != "" {
		user.Phone = phone
	}
	if password := c.FormValue("password"); password != "" {
		if password != c.FormValue("password_confirm") {
			fm["message"] = "Пароли не совпадают"

			return flash.WithError(c, fm).Redirect("/profile")
		}
		if err := user.SetPassword(password); err != nil {
			fm["message"] = "Не удалось сохранить пароль"

			return flash.WithError(c, fm).Redirect("/profile")
		}
	}

	if err := repos.User.Update(user); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/profile")
	}

	// The header greets by session values, keep them in sync.
	if sess, err := session.GetSessionStore().Get(c); err == nil {
		sess.Set(USER_NAME, user.Login)
		if user.Email != nil {
			sess.Set(USER_EMAIL, *user.Email)
		}
		_ = sess.Save()
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Профиль обновлён",
	}

	return flash.WithSuccess(c, fm).Redirect("/profile")
}

// HandleProfileDelete removes the account and ends the session.
func HandleProfileDelete(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	fm := fiber.Map{
		"type": "error",
	}

	if err := repository.GetGlobalRepositories().User.Delete(uc.UserID); err != nil {
		fm["message"] = "Не удалось удалить аккаунт"

		return flash.WithError(c, fm).Redirect("/profile")
	}

	if sess, err := session.GetSessionStore().Get(c); err == nil {
		_ = sess.Destroy()
	}
	c.Locals(FROM_PROTECTED, false)

	fm = fiber.Map{
		"type":    "success",
		"message": "Аккаунт удалён",
	}

	return flash.WithSuccess(c, fm).Redirect("/")
}
