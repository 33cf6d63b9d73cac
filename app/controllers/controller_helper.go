package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

// Session keys shared between controllers and the session middleware.
const (
	AUTH_KEY       string = "authenticated"
	USER_ID        string = "user_id"
	USER_NAME      string = "username"
	USER_EMAIL     string = "user_email"
	EMPLOYEE_ID    string = "employee_id"
	EMPLOYEE_ROLES string = "employee_roles"
	FROM_PROTECTED string = "from_protected"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// viewData assembles the base bindings every template expects: the user
// context, flash message and page title, plus the handler's own values.
func viewData(c *fiber.Ctx, title string, data fiber.Map) fiber.Map {
	uc := usercontext.GetUserContext(c)
	out := fiber.Map{
		"Title":      title,
		"User":       uc,
		"IsLoggedIn": uc.IsLoggedIn,
		"IsEmployee": uc.IsEmployee,
		"Flash":      flash.Get(c),
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}

func formInt(c *fiber.Ctx, key string, def int) int {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return def
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}

func formFloat(c *fiber.Ctx, key string, def float64) float64 {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return def
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return def
}

// pagination turns ?page= into offset/limit with sane bounds.
func pagination(c *fiber.Ctx, perPage int) (page, offset, limit int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 24
	}
	return page, (page - 1) * perPage, perPage
}
