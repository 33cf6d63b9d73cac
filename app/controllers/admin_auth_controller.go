package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/session"
)

// HandleAdminLogin authenticates back-office staff against the employee
// table. Staff sessions are independent of customer sessions.
func HandleAdminLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.Render("admin/login", viewData(c, "Вход для сотрудников", fiber.Map{}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	employeeRepo := repository.GetGlobalFactory().GetEmployeeRepository()
	employee, err := employeeRepo.GetActiveByEmail(email)
	if err != nil || !employee.CheckPassword(password) {
		fm["message"] = "Неверная почта или пароль"

		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	sess.Set(EMPLOYEE_ID, employee.ID)
	sess.Set(EMPLOYEE_ROLES, strings.Join(employee.RoleCodes(), ","))
	sess.Set(USER_NAME, employee.FullName)
	sess.Set(USER_EMAIL, employee.Email)

	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/admin/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Добро пожаловать",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin")
}

func HandleAdminLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Сессия завершена",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/login")
}
