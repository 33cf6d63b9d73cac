package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/database"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/entitlements"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/mediaembed"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/statistics"
	"github.com/Lomoncivici/Kyrsach4/internal/pkg/usercontext"
)

// HandleContentDetail renders the content page: metadata, genres, seasons,
// rating, the viewer's own interaction state and the call-to-action that
// matches the access mode.
func HandleContentDetail(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	content, err := repos.Content.GetDetail(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	uc := usercontext.GetUserContext(c)
	now := time.Now()

	resolver := entitlements.NewResolverFromDB(database.GetDB())
	canWatch, err := resolver.CanWatch(uc.UserID, content, now)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "access check failed")
	}

	statistics.AddView()

	avg, _ := repos.Interaction.AverageRating(content.ID)

	data := fiber.Map{
		"Content":    content,
		"AccessMode": string(entitlements.ClassifyContent(content)),
		"CanWatch":   canWatch,
		"AvgRating":  avg,
	}

	if uc.IsLoggedIn {
		if review, err := repos.Interaction.GetUserRating(uc.UserID, content.ID); err == nil {
			data["UserRating"] = review.Rating
		}
		if fav, err := repos.Interaction.IsFavorite(uc.UserID, content.ID); err == nil {
			data["IsFavorite"] = fav
		}
		if in, err := repos.Interaction.InWatchlist(uc.UserID, content.ID); err == nil {
			data["InWatchlist"] = in
		}
		if has, err := repos.Purchase.Has(uc.UserID, content.ID); err == nil {
			data["HasPurchase"] = has
		}
	}

	return c.Render("content/detail", viewData(c, content.Title, data))
}

// HandleContentSource resolves the playback source of a movie. Access is
// enforced here, not in the player.
func HandleContentSource(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return fiber.ErrUnauthorized
	}

	repos := repository.GetGlobalRepositories()
	content, err := repos.Content.GetDetail(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	resolver := entitlements.NewResolverFromDB(database.GetDB())
	ok, err := resolver.CanWatch(uc.UserID, content, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "access check failed")
	}
	if !ok {
		return fiber.ErrForbidden
	}

	url := content.VideoURL()
	if url == "" {
		return fiber.ErrNotFound
	}
	source, resolved := mediaembed.Resolve(url)
	if !resolved {
		return fiber.ErrNotFound
	}

	return c.JSON(source)
}

// HandleEpisodeSource resolves the playback source of a single episode.
// Anonymous callers are allowed through for free titles; everything else
// needs an entitlement.
func HandleEpisodeSource(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	seasonNum, err := c.ParamsInt("season")
	if err != nil {
		return fiber.ErrBadRequest
	}
	episodeNum, err := c.ParamsInt("episode")
	if err != nil {
		return fiber.ErrBadRequest
	}

	repos := repository.GetGlobalRepositories()
	content, err := repos.Content.GetByID(c.Params("id"))
	if err != nil || content.Type != models.ContentTypeSeries {
		return fiber.ErrNotFound
	}

	resolver := entitlements.NewResolverFromDB(database.GetDB())
	ok, err := resolver.CanWatch(uc.UserID, content, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "access check failed")
	}
	if !ok {
		if !uc.IsLoggedIn {
			return fiber.ErrUnauthorized
		}
		return fiber.ErrForbidden
	}

	episode, err := repos.Content.GetEpisode(content.ID, seasonNum, episodeNum)
	if err != nil {
		return fiber.ErrNotFound
	}
	url := episode.VideoURL()
	if url == "" {
		return fiber.ErrNotFound
	}
	source, resolved := mediaembed.Resolve(url)
	if !resolved {
		return fiber.ErrNotFound
	}

	return c.JSON(source)
}

// HandleRateContent upserts the viewer's 1..5 rating and returns the new
// average. Out-of-range values are clamped, not rejected.
func HandleRateContent(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	contentID := c.Params("id")
	value := formInt(c, "value", 0)
	if value == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": "bad value"})
	}

	repos := repository.GetGlobalRepositories()
	content, err := repos.Content.GetByID(contentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "not found"})
	}

	// Only viewers with watch access may rate.
	resolver := entitlements.NewResolverFromDB(database.GetDB())
	if allowed, err := resolver.CanWatch(uc.UserID, content, time.Now()); err != nil || !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"ok": false, "error": "no access"})
	}

	if err := repos.Interaction.UpsertRating(uc.UserID, contentID, value, c.FormValue("comment")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}
	avg, _ := repos.Interaction.AverageRating(contentID)

	return c.JSON(fiber.Map{"ok": true, "avg": avg})
}

// HandleFavoriteToggle flips favorite membership.
func HandleFavoriteToggle(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	inList, err := repository.GetGlobalRepositories().Interaction.ToggleFavorite(uc.UserID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true, "in_list": inList})
}

// HandleWatchlistToggle flips watchlist membership.
func HandleWatchlistToggle(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	inList, err := repository.GetGlobalRepositories().Interaction.ToggleWatchlist(uc.UserID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true, "in_list": inList})
}

// HandleSaveProgress stores the playback position reported by the player.
func HandleSaveProgress(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	progress := &models.WatchProgress{
		UserID:      uc.UserID,
		ContentID:   c.Params("id"),
		SeasonNum:   formInt(c, "season", 0),
		EpisodeNum:  formInt(c, "episode", 0),
		PositionSec: formInt(c, "position", 0),
		DurationSec: formInt(c, "duration", 0),
		Completed:   c.FormValue("completed") == "1",
	}
	if progress.PositionSec < 0 {
		progress.PositionSec = 0
	}

	if err := repository.GetGlobalRepositories().Interaction.UpsertProgress(progress); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true, "completed": progress.Completed})
}
