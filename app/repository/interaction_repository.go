package repository

import (
	"errors"
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// interactionRepository implements the InteractionRepository interface
type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository instance
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) UpsertRating(userID, contentID string, rating int, comment string) error {
	review := models.ContentReview{
		UserID:    userID,
		ContentID: contentID,
		Rating:    models.ClampRating(rating),
		Comment:   comment,
		UpdatedAt: time.Now(),
	}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).
		Create(&review).Error
}

// AverageRating is computed on read, never stored.
func (r *interactionRepository) AverageRating(contentID string) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.ContentReview{}).
		Select("AVG(rating)").
		Where("content_id = ?", contentID).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *interactionRepository) GetUserRating(userID, contentID string) (*models.ContentReview, error) {
	var review models.ContentReview
	err := r.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *interactionRepository) ListReviews(contentID string, limit int) ([]models.ContentReview, error) {
	var reviews []models.ContentReview
	q := r.db.Where("content_id = ?", contentID).Order("updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&reviews).Error
	return reviews, err
}

func (r *interactionRepository) ListUserRatings(userID string) ([]models.ContentReview, error) {
	var reviews []models.ContentReview
	err := r.db.Where("user_id = ?", userID).
		Preload("Content").
		Order("updated_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *interactionRepository) ToggleFavorite(userID, contentID string) (bool, error) {
	inList := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var fav models.Favorite
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND content_id = ?", userID, contentID).
			First(&fav).Error
		switch {
		case err == nil:
			return tx.Delete(&fav).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			inList = true
			return tx.Create(&models.Favorite{UserID: userID, ContentID: contentID}).Error
		default:
			return err
		}
	})
	return inList, err
}

func (r *interactionRepository) IsFavorite(userID, contentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) ListFavorites(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.
		Preload("Content").
		Preload("Content.CoverImage").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// ToggleWatchlist flips membership under a row lock so two concurrent
// toggles cannot both insert.
func (r *interactionRepository) ToggleWatchlist(userID, contentID string) (bool, error) {
	inList := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var entry models.WatchlistEntry
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND content_id = ?", userID, contentID).
			First(&entry).Error
		switch {
		case err == nil:
			return tx.Delete(&entry).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			inList = true
			return tx.Create(&models.WatchlistEntry{UserID: userID, ContentID: contentID}).Error
		default:
			return err
		}
	})
	return inList, err
}

func (r *interactionRepository) InWatchlist(userID, contentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.WatchlistEntry{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *interactionRepository) ListWatchlist(userID string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	err := r.db.
		Preload("Content").
		Preload("Content.CoverImage").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *interactionRepository) UpsertProgress(progress *models.WatchProgress) error {
	progress.Finalize(time.Now())
	// Completion is sticky: once a row is completed, a later report at a
	// lower position must not clear it, hence the OR with the stored value.
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "content_id"},
				{Name: "season_num"}, {Name: "episode_num"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"position_sec": progress.PositionSec,
				"duration_sec": progress.DurationSec,
				"completed":    gorm.Expr("watch_history.completed OR excluded.completed"),
				"watched_at":   progress.WatchedAt,
			}),
		}).
		Create(progress).Error
}

func (r *interactionRepository) GetProgress(userID, contentID string, seasonNum, episodeNum int) (*models.WatchProgress, error) {
	var progress models.WatchProgress
	err := r.db.
		Where("user_id = ? AND content_id = ? AND season_num = ? AND episode_num = ?",
			userID, contentID, seasonNum, episodeNum).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListContinueWatching returns the most recent unfinished row per content.
func (r *interactionRepository) ListContinueWatching(userID string, limit int) ([]models.WatchProgress, error) {
	if limit <= 0 {
		limit = 12
	}
	var rows []models.WatchProgress
	err := r.db.
		Preload("Content").
		Preload("Content.CoverImage").
		Where(`user_id = ? AND completed = false AND (content_id, watched_at) IN (
			SELECT content_id, MAX(watched_at) FROM watch_history WHERE user_id = ? GROUP BY content_id
		)`, userID, userID).
		Order("watched_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *interactionRepository) ListHistory(userID string, limit int) ([]models.WatchProgress, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.WatchProgress
	err := r.db.
		Preload("Content").
		Preload("Content.CoverImage").
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListRecentActivity returns the newest watch events across all users, for
// the back-office activity feed.
func (r *interactionRepository) ListRecentActivity(limit int) ([]models.WatchProgress, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	var rows []models.WatchProgress
	err := r.db.
		Preload("User").
		Preload("Content").
		Order("watched_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
