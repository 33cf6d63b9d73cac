package entitlements

import (
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates an entitlement repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) HasPurchase(userID, contentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) HasCurrentActiveSubscription(userID string, at time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserSubscription{}).
		Where("user_id = ? AND status = ? AND started_at <= ? AND (expires_at IS NULL OR expires_at > ?)",
			userID, models.SubscriptionStatusActive, at, at).
		Count(&count).Error
	return count > 0, err
}
