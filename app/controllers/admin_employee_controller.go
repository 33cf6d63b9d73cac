package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

// HandleAdminEmployees lists staff accounts and creates new ones.
func HandleAdminEmployees(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodGet {
		employees, err := repos.Employee.List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "employee listing failed")
		}
		roles, _ := repos.Employee.ListRoles()
		return c.Render("admin/employees", viewData(c, "Сотрудники", fiber.Map{
			"Employees": employees,
			"Roles":     roles,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	employee := &models.Employee{
		Email:    strings.TrimSpace(c.FormValue("email")),
		FullName: strings.TrimSpace(c.FormValue("full_name")),
		IsActive: true,
	}
	if employee.Email == "" || c.FormValue("password") == "" {
		fm["message"] = "Укажите почту и пароль"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}
	if err := employee.SetPassword(c.FormValue("password")); err != nil {
		fm["message"] = "Не удалось сохранить пароль"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}
	if err := repos.Employee.Create(employee); err != nil {
		fm["message"] = "Сотрудник с такой почтой уже существует"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}

	if roles := c.FormValue("roles"); roles != "" {
		if err := repos.Employee.SetRoles(employee.ID, strings.Split(roles, ",")); err != nil {
			fm["message"] = "Сотрудник создан, но роли не назначены"

			return flash.WithError(c, fm).Redirect("/admin/employees")
		}
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Сотрудник добавлен",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/employees")
}

// HandleAdminEmployeeEdit updates roles, password and active flag.
func HandleAdminEmployeeEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	fm := fiber.Map{
		"type": "error",
	}

	employee, err := repos.Employee.GetByID(c.Params("id"))
	if err != nil {
		fm["message"] = "Сотрудник не найден"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}

	if fullName := strings.TrimSpace(c.FormValue("full_name")); fullName != "" {
		employee.FullName = fullName
	}
	if password := c.FormValue("password"); password != "" {
		if err := employee.SetPassword(password); err != nil {
			fm["message"] = "Не удалось сохранить пароль"

			return flash.WithError(c, fm).Redirect("/admin/employees")
		}
	}
	if active := c.FormValue("is_active"); active != "" {
		employee.IsActive = active == "1"
	}

	if err := repos.Employee.Update(employee); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}

	if roles := c.FormValue("roles"); roles != "" {
		if err := repos.Employee.SetRoles(employee.ID, strings.Split(roles, ",")); err != nil {
			fm["message"] = "Изменения сохранены, но роли не обновлены"

			return flash.WithError(c, fm).Redirect("/admin/employees")
		}
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Сотрудник обновлён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/employees")
}

// HandleAdminEmployeeDelete removes a staff account. Self-deletion is blocked.
func HandleAdminEmployeeDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	id := c.Params("id")
	if usercontext.GetUserContext(c).EmployeeID == id {
		fm["message"] = "Нельзя удалить собственный аккаунт"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}

	if err := repository.GetGlobalRepositories().Employee.Delete(id); err != nil {
		fm["message"] = "Не удалось удалить сотрудника"

		return flash.WithError(c, fm).Redirect("/admin/employees")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Сотрудник удалён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/employees")
}
