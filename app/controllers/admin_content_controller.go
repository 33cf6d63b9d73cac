package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"github.com/Lomoncivici/Kyrsach4/app/repository"
)

// mediaAssetFromForm reuses an existing asset with the same URL or creates
// a new one. Empty URLs yield nil.
func mediaAssetFromForm(c *fiber.Ctx, field, kind string) (*string, error) {
	url := strings.TrimSpace(c.FormValue(field))
	if url == "" {
		return nil, nil
	}

	repos := repository.GetGlobalRepositories()
	if existing, err := repos.Content.GetMediaAssetByURL(url); err == nil {
		return &existing.ID, nil
	}

	asset := &models.MediaAsset{Kind: kind, URL: url, MimeType: c.FormValue(field + "_mime")}
	if err := repos.Content.CreateMediaAsset(asset); err != nil {
		return nil, err
	}
	return &asset.ID, nil
}

func contentFromForm(c *fiber.Ctx, content *models.Content) error {
	content.Type = c.FormValue("type")
	content.Title = strings.TrimSpace(c.FormValue("title"))
	content.ReleaseYear = formInt(c, "release_year", content.ReleaseYear)
	content.Description = c.FormValue("description")
	content.IsFree = c.FormValue("is_free") == "1"
	content.Price = formFloat(c, "price", content.Price)

	var err error
	if content.CoverImageID, err = mediaAssetFromForm(c, "cover_url", models.AssetKindCover); err != nil {
		return err
	}
	if content.TrailerID, err = mediaAssetFromForm(c, "trailer_url", models.AssetKindTrailer); err != nil {
		return err
	}
	if content.VideoID, err = mediaAssetFromForm(c, "video_url", models.AssetKindVideo); err != nil {
		return err
	}

	return content.Validate()
}

// HandleAdminContentList lists the catalog for the back office.
func HandleAdminContentList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	_, offset, limit := pagination(c, adminPageSize)
	items, total, err := repos.Content.List(repository.ContentFilter{
		Type:   c.Query("type"),
		Query:  c.Query("q"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "catalog listing failed")
	}

	return c.Render("admin/content_list", viewData(c, "Контент", fiber.Map{
		"Items": items,
		"Total": total,
		"Query": c.Query("q"),
	}))
}

// HandleAdminContentNew renders the creation form and creates content.
func HandleAdminContentNew(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	if c.Method() == fiber.MethodGet {
		genres, _ := repos.Content.ListGenres()
		return c.Render("admin/content_form", viewData(c, "Новый контент", fiber.Map{
			"Genres": genres,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	var content models.Content
	if err := contentFromForm(c, &content); err != nil {
		fm["message"] = "Проверьте поля формы"

		return flash.WithError(c, fm).Redirect("/admin/content/new")
	}
	if err := repos.Content.Create(&content); err != nil {
		fm["message"] = "Контент с таким названием уже существует"

		return flash.WithError(c, fm).Redirect("/admin/content/new")
	}
	if genreIDs := c.FormValue("genre_ids"); genreIDs != "" {
		_ = repos.Content.SetGenres(content.ID, strings.Split(genreIDs, ","))
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Контент создан",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/content/" + content.ID)
}

// HandleAdminContentEdit renders the edit form and applies updates.
func HandleAdminContentEdit(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	content, err := repos.Content.GetDetail(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	if c.Method() == fiber.MethodGet {
		genres, _ := repos.Content.ListGenres()
		return c.Render("admin/content_form", viewData(c, "Редактирование", fiber.Map{
			"Content": content,
			"Genres":  genres,
		}))
	}

	fm := fiber.Map{
		"type": "error",
	}

	if err := contentFromForm(c, content); err != nil {
		fm["message"] = "Проверьте поля формы"

		return flash.WithError(c, fm).Redirect("/admin/content/" + content.ID)
	}
	if err := repos.Content.Update(content); err != nil {
		fm["message"] = "Не удалось сохранить изменения"

		return flash.WithError(c, fm).Redirect("/admin/content/" + content.ID)
	}
	if genreIDs := c.FormValue("genre_ids"); genreIDs != "" {
		_ = repos.Content.SetGenres(content.ID, strings.Split(genreIDs, ","))
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Изменения сохранены",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/content/" + content.ID)
}

// HandleAdminContentDelete removes a catalog entry.
func HandleAdminContentDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	if err := repository.GetGlobalRepositories().Content.Delete(c.Params("id")); err != nil {
		fm["message"] = "Не удалось удалить контент"

		return flash.WithError(c, fm).Redirect("/admin/content")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Контент удалён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/content")
}

// HandleAdminSeasonCreate adds a season to a series.
func HandleAdminSeasonCreate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	contentID := c.Params("id")

	fm := fiber.Map{
		"type": "error",
	}

	content, err := repos.Content.GetByID(contentID)
	if err != nil || content.Type != models.ContentTypeSeries {
		fm["message"] = "Сезоны доступны только для сериалов"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}

	season := &models.Season{
		ContentID: contentID,
		SeasonNum: formInt(c, "season_num", 0),
	}
	if season.SeasonNum < 1 {
		fm["message"] = "Номер сезона должен быть положительным"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}
	if err := repos.Content.CreateSeason(season); err != nil {
		fm["message"] = "Такой сезон уже существует"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Сезон добавлен",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/content/" + contentID)
}

// HandleAdminEpisodeCreate adds an episode to a season.
func HandleAdminEpisodeCreate(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	contentID := c.Params("id")

	fm := fiber.Map{
		"type": "error",
	}

	seasonNum := formInt(c, "season_num", 0)
	season, err := repos.Content.GetSeason(contentID, seasonNum)
	if err != nil {
		fm["message"] = "Сезон не найден"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}

	videoID, err := mediaAssetFromForm(c, "video_url", models.AssetKindVideo)
	if err != nil {
		fm["message"] = "Не удалось сохранить видео"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}

	episode := &models.Episode{
		SeasonID:    season.ID,
		EpisodeNum:  formInt(c, "episode_num", 0),
		Title:       c.FormValue("title"),
		DurationSec: formInt(c, "duration_sec", 0),
		VideoID:     videoID,
	}
	if episode.EpisodeNum < 1 {
		fm["message"] = "Номер серии должен быть положительным"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}
	if err := repos.Content.CreateEpisode(episode); err != nil {
		fm["message"] = "Такая серия уже существует"

		return flash.WithError(c, fm).Redirect("/admin/content/" + contentID)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Серия добавлена",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/content/" + contentID)
}

// HandleAdminGenreCreate adds a genre.
func HandleAdminGenreCreate(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		fm["message"] = "Название жанра не может быть пустым"

		return flash.WithError(c, fm).Redirect("/admin/genres")
	}

	if err := repository.GetGlobalRepositories().Content.CreateGenre(&models.Genre{Name: name}); err != nil {
		fm["message"] = "Такой жанр уже существует"

		return flash.WithError(c, fm).Redirect("/admin/genres")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Жанр добавлен",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/genres")
}

// HandleAdminGenres lists genres for the back office.
func HandleAdminGenres(c *fiber.Ctx) error {
	genres, err := repository.GetGlobalRepositories().Content.ListGenres()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "genre listing failed")
	}
	return c.Render("admin/genres", viewData(c, "Жанры", fiber.Map{
		"Genres": genres,
	}))
}

// HandleAdminGenreDelete removes a genre.
func HandleAdminGenreDelete(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	if err := repository.GetGlobalRepositories().Content.DeleteGenre(c.Params("id")); err != nil {
		fm["message"] = "Не удалось удалить жанр"

		return flash.WithError(c, fm).Redirect("/admin/genres")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Жанр удалён",
	}

	return flash.WithSuccess(c, fm).Redirect("/admin/genres")
}
