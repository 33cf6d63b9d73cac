package repository

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// contentRepository implements the ContentRepository interface
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new catalog repository instance
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(content *models.Content) error {
	return r.db.Create(content).Error
}

func (r *contentRepository) GetByID(id string) (*models.Content, error) {
	var content models.Content
	err := r.db.
		Preload("Genres").
		Preload("CoverImage").
		First(&content, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// GetDetail loads everything the detail page needs in one shot, including
// seasons with their episodes in watch order.
func (r *contentRepository) GetDetail(id string) (*models.Content, error) {
	var content models.Content
	err := r.db.
		Preload("Genres").
		Preload("CoverImage").
		Preload("Trailer").
		Preload("Video").
		Preload("Seasons", func(db *gorm.DB) *gorm.DB {
			return db.Order("season_num ASC")
		}).
		Preload("Seasons.Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episode_num ASC")
		}).
		Preload("Seasons.Episodes.Video").
		First(&content, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Update(content *models.Content) error {
	return r.db.Save(content).Error
}

func (r *contentRepository) Delete(id string) error {
	return r.db.Delete(&models.Content{}, "id = ?", id).Error
}

func (r *contentRepository) List(filter ContentFilter) ([]models.Content, int64, error) {
	q := r.db.Model(&models.Content{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.GenreID != "" {
		q = q.Joins("JOIN content_genres cg ON cg.content_id = contents.id").
			Where("cg.genre_id = ?", filter.GenreID)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		q = q.Where("title ILIKE ?", "%"+query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Content
	err := q.
		Preload("Genres").
		Preload("CoverImage").
		Order("release_year DESC, title ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&items).Error
	return items, total, err
}

// Search promotes exact title matches to the top of substring results.
func (r *contentRepository) Search(query string, limit int) ([]models.Content, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	// A well-formed uuid is treated as a direct id lookup.
	if _, err := uuid.Parse(query); err == nil {
		var item models.Content
		if err := r.db.Preload("CoverImage").First(&item, "id = ?", query).Error; err != nil {
			return nil, nil
		}
		return []models.Content{item}, nil
	}

	var items []models.Content
	err := r.db.
		Preload("CoverImage").
		Where("title ILIKE ? OR description ILIKE ?", "%"+query+"%", "%"+query+"%").
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(title) = LOWER(?) THEN 0 ELSE 1 END, title ASC",
			Vars:               []interface{}{query},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *contentRepository) ListGenres() ([]models.Genre, error) {
	var genres []models.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// ListGenreSections picks the genres with the most titles and loads a few
// of the freshest items for each. Genres without titles are skipped.
func (r *contentRepository) ListGenreSections(maxGenres, perGenre int) ([]GenreSection, error) {
	if maxGenres <= 0 {
		maxGenres = 5
	}
	if perGenre <= 0 {
		perGenre = 8
	}

	var genres []models.Genre
	err := r.db.
		Joins("JOIN content_genres cg ON cg.genre_id = genres.id").
		Group("genres.id").
		Order("COUNT(cg.content_id) DESC, genres.name ASC").
		Limit(maxGenres).
		Find(&genres).Error
	if err != nil {
		return nil, err
	}

	sections := make([]GenreSection, 0, len(genres))
	for _, genre := range genres {
		var items []models.Content
		err := r.db.
			Preload("CoverImage").
			Joins("JOIN content_genres cg ON cg.content_id = contents.id").
			Where("cg.genre_id = ?", genre.ID).
			Order("contents.release_year DESC, contents.title ASC").
			Limit(perGenre).
			Find(&items).Error
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		sections = append(sections, GenreSection{Genre: genre, Items: items})
	}
	return sections, nil
}

func (r *contentRepository) CreateGenre(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

func (r *contentRepository) DeleteGenre(id string) error {
	return r.db.Delete(&models.Genre{}, "id = ?", id).Error
}

// SetGenres replaces the genre set of a content row.
func (r *contentRepository) SetGenres(contentID string, genreIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", contentID).Delete(&models.ContentGenre{}).Error; err != nil {
			return err
		}
		for _, genreID := range genreIDs {
			link := models.ContentGenre{ContentID: contentID, GenreID: genreID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *contentRepository) GetSeason(contentID string, seasonNum int) (*models.Season, error) {
	var season models.Season
	err := r.db.
		Preload("Episodes", func(db *gorm.DB) *gorm.DB { return db.Order("episode_num ASC") }).
		Where("content_id = ? AND season_num = ?", contentID, seasonNum).
		First(&season).Error
	if err != nil {
		return nil, err
	}
	return &season, nil
}

func (r *contentRepository) CreateSeason(season *models.Season) error {
	return r.db.Create(season).Error
}

func (r *contentRepository) DeleteSeason(id string) error {
	return r.db.Delete(&models.Season{}, "id = ?", id).Error
}

func (r *contentRepository) GetEpisode(contentID string, seasonNum, episodeNum int) (*models.Episode, error) {
	var episode models.Episode
	err := r.db.
		Preload("Video").
		Joins("JOIN seasons ON seasons.id = episodes.season_id").
		Where("seasons.content_id = ? AND seasons.season_num = ? AND episodes.episode_num = ?",
			contentID, seasonNum, episodeNum).
		First(&episode).Error
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

func (r *contentRepository) CreateEpisode(episode *models.Episode) error {
	return r.db.Create(episode).Error
}

func (r *contentRepository) UpdateEpisode(episode *models.Episode) error {
	return r.db.Save(episode).Error
}

func (r *contentRepository) DeleteEpisode(id string) error {
	return r.db.Delete(&models.Episode{}, "id = ?", id).Error
}

func (r *contentRepository) CreateMediaAsset(asset *models.MediaAsset) error {
	return r.db.Create(asset).Error
}

func (r *contentRepository) GetMediaAssetByURL(url string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := r.db.Where("url = ?", url).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *contentRepository) ListMediaAssets(kind string) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	q := r.db.Order("created_at DESC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Find(&assets).Error
	return assets, err
}
