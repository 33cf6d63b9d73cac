package repository

import (
	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// purchaseRepository implements the PurchaseRepository interface
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance
func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create inserts a purchase; a repeat buy of the same content is a no-op
// so a double submit never fails or double-grants.
func (r *purchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
			DoNothing: true,
		}).
		Create(purchase).Error
}

func (r *purchaseRepository) Has(userID, contentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) ListByUser(userID string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.
		Preload("Content").
		Preload("Content.CoverImage").
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) List(offset, limit int) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.
		Preload("User").
		Preload("Content").
		Order("purchased_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).Count(&count).Error
	return count, err
}

func (r *purchaseRepository) Delete(id string) error {
	return r.db.Delete(&models.Purchase{}, "id = ?", id).Error
}
