package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/entitlements"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/statistics"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

const catalogPageSize = 24

// HandleHome renders the catalog: filterable content grid plus a
// continue-watching row for logged-in users.
func HandleHome(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	_, offset, limit := pagination(c, catalogPageSize)
	filter := repository.ContentFilter{
		Type:    c.Query("type"),
		GenreID: c.Query("genre"),
		Query:   c.Query("q"),
		Offset:  offset,
		Limit:   limit,
	}

	items, total, err := repos.Content.List(filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "catalog unavailable")
	}

	genres, _ := repos.Content.ListGenres()

	// Genre rows are decoration; a failed query degrades to none.
	sections, err := repos.Content.ListGenreSections(5, 8)
	if err != nil {
		log.Printf("Failed to load genre sections: %v", err)
		sections = nil
	}

	stats := statistics.GetStatistics()

	data := fiber.Map{
		"Items":         items,
		"Total":         total,
		"Genres":        genres,
		"GenreSections": sections,
		"Type":          filter.Type,
		"GenreID":       filter.GenreID,
		"Query":         filter.Query,
		"PageSize":      catalogPageSize,
		"Stats":         stats,
	}

	if uc := usercontext.GetUserContext(c); uc.IsLoggedIn {
		if rows, err := repos.Interaction.ListContinueWatching(uc.UserID, 12); err == nil {
			data["ContinueWatching"] = rows
		}
	}

	return c.Render("home", viewData(c, "Каталог", data))
}

// HandleSearch returns live search hits as JSON for the header search box.
// Exact title matches come first.
func HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	items, err := repository.GetGlobalRepositories().Content.Search(query, 10)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}

	type hit struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Type        string `json:"type"`
		ReleaseYear int    `json:"release_year"`
		CoverURL    string `json:"cover_url,omitempty"`
		AccessMode  string `json:"access_mode"`
	}
	hits := make([]hit, 0, len(items))
	for i := range items {
		item := &items[i]
		hits = append(hits, hit{
			ID:          item.ID,
			Title:       item.Title,
			Type:        item.Type,
			ReleaseYear: item.ReleaseYear,
			CoverURL:    item.CoverURL(),
			AccessMode:  string(entitlements.ClassifyContent(item)),
		})
	}

	return c.JSON(fiber.Map{"ok": true, "results": hits})
}

// HandleGenres lists genres for the filter bar.
func HandleGenres(c *fiber.Ctx) error {
	genres, err := repository.GetGlobalRepositories().Content.ListGenres()
	if err != nil {
		genres = []models.Genre{}
	}
	return c.JSON(fiber.Map{"ok": true, "genres": genres})
}
