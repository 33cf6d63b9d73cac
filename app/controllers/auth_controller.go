package controllers

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/cache"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/env"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/mail"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/session"
)

const (
	resetCodeTTL  = 120 * time.Second
	resetTokenTTL = 300 * time.Second
)

func resetCodeKey(email string) string {
	return "pwreset:code:" + strings.ToLower(email)
}

func resetTokenKey(token string) string {
	return "pwreset:token:" + token
}

// HandleAuthLogin renders the login form and processes submissions. The
// identifier field accepts login, email or phone.
func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Render("auth/login", viewData(c, "Вход", fiber.Map{}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	identifier := strings.TrimSpace(c.FormValue("identifier"))
	password := c.FormValue("password")

	// notice: in production you should not inform the user
	// with detailed messages about login failures
	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.ResolveIdentifier(identifier)
	if err != nil || !user.IsActive || !user.CheckPassword(password) {
		fm["message"] = "Неверный логин или пароль"

		return flash.WithError(c, fm).Redirect("/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Login)
	sess.Set(USER_EMAIL, user.EmailOrEmpty())

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "С возвращением!",
	}

	return flash.WithSuccess(c, fm).Redirect("/")
}

// HandleAuthRegister creates an account from a single contact field. The
// login is derived from the contact and made unique with a numeric suffix.
func HandleAuthRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Render("auth/register", viewData(c, "Регистрация", fiber.Map{}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	contact := strings.TrimSpace(c.FormValue("contact"))
	password := c.FormValue("password")
	passwordConfirm := c.FormValue("password_confirm")

	if contact == "" || password == "" {
		fm["message"] = "Укажите контакт и пароль"

		return flash.WithError(c, fm).Redirect("/register")
	}
	if password != passwordConfirm {
		fm["message"] = "Пароли не совпадают"

		return flash.WithError(c, fm).Redirect("/register")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	base := models.DeriveLogin(contact)
	login, err := userRepo.NextFreeLogin(base)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/register")
	}

	user, err := models.CreateUser(login, contact, password)
	if err != nil {
		fm["message"] = "Не удалось создать аккаунт"

		return flash.WithError(c, fm).Redirect("/register")
	}
	if err := user.Validate(); err != nil {
		fm["message"] = "Проверьте введённые данные"

		return flash.WithError(c, fm).Redirect("/register")
	}
	if err := userRepo.Create(user); err != nil {
		fm["message"] = "Аккаунт с таким контактом уже существует"

		return flash.WithError(c, fm).Redirect("/register")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		sess.Set(AUTH_KEY, true)
		sess.Set(USER_ID, user.ID)
		sess.Set(USER_NAME, user.Login)
		sess.Set(USER_EMAIL, user.EmailOrEmpty())
		_ = sess.Save()
	}

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Аккаунт создан, ваш логин: %s", user.Login),
	}

	return flash.WithSuccess(c, fm).Redirect("/")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	if err := sess.Destroy(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "До встречи!",
	}

	c.Locals(FROM_PROTECTED, false)

	return flash.WithSuccess(c, fm).Redirect("/login")
}

// HandlePasswordResetRequest sends a 6-digit confirmation code to the
// account email. The code lives in cache for two minutes.
func HandlePasswordResetRequest(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Render("auth/reset_request", viewData(c, "Восстановление пароля", fiber.Map{}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	email := strings.TrimSpace(c.FormValue("email"))
	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := userRepo.GetByEmail(email); err != nil {
		// Do not reveal whether the address exists.
		fm = fiber.Map{
			"type":    "success",
			"message": "Если адрес зарегистрирован, на него отправлен код",
		}
		return flash.WithSuccess(c, fm).Redirect("/password-reset/confirm?email=" + email)
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := cache.Set(resetCodeKey(email), code, resetCodeTTL); err != nil {
		fm["message"] = "Сервис временно недоступен"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}

	go mail.SendResetCode(email, code)

	fm = fiber.Map{
		"type":    "success",
		"message": "Код отправлен на почту",
	}

	return flash.WithSuccess(c, fm).Redirect("/password-reset/confirm?email=" + email)
}

// HandlePasswordResetConfirm swaps a valid code for a one-time reset token.
func HandlePasswordResetConfirm(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Render("auth/reset_confirm", viewData(c, "Код подтверждения", fiber.Map{
			"Email": c.Query("email"),
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	email := strings.TrimSpace(c.FormValue("email"))
	code := strings.TrimSpace(c.FormValue("code"))

	stored, err := cache.Get(resetCodeKey(email))
	if err != nil || stored == "" || stored != code {
		fm["message"] = "Неверный или истёкший код"

		return flash.WithError(c, fm).Redirect("/password-reset/confirm?email=" + email)
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(email)
	if err != nil {
		fm["message"] = "Неверный или истёкший код"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}

	cache.Delete(resetCodeKey(email))

	resetToken := uuid.NewString()
	if err := cache.Set(resetTokenKey(resetToken), user.ID, resetTokenTTL); err != nil {
		fm["message"] = "Сервис временно недоступен"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}

	if appURL := env.GetEnv("PUBLIC_DOMAIN", ""); appURL != "" {
		go mail.SendResetLink(email, appURL+"/password-reset/new?token="+resetToken)
	}

	return c.Redirect("/password-reset/new?token="+resetToken, fiber.StatusSeeOther)
}

// HandlePasswordResetNew sets the new password against a live reset token.
func HandlePasswordResetNew(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Render("auth/reset_new", viewData(c, "Новый пароль", fiber.Map{
			"Token": c.Query("token"),
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	resetToken := strings.TrimSpace(c.FormValue("token"))
	password := c.FormValue("password")
	passwordConfirm := c.FormValue("password_confirm")

	if password == "" || password != passwordConfirm {
		fm["message"] = "Пароли не совпадают"

		return flash.WithError(c, fm).Redirect("/password-reset/new?token=" + resetToken)
	}

	userID, err := cache.Get(resetTokenKey(resetToken))
	if err != nil || userID == "" {
		fm["message"] = "Ссылка устарела, запросите код заново"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByID(userID)
	if err != nil {
		fm["message"] = "Ссылка устарела, запросите код заново"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}

	if err := user.SetPassword(password); err != nil {
		fm["message"] = "Не удалось сохранить пароль"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}
	if err := userRepo.Update(user); err != nil {
		fm["message"] = "Не удалось сохранить пароль"

		return flash.WithError(c, fm).Redirect("/password-reset")
	}

	cache.Delete(resetTokenKey(resetToken))

	fm = fiber.Map{
		"type":    "success",
		"message": "Пароль обновлён, войдите с новым паролем",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}
