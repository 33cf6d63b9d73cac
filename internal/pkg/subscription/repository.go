package subscription

import (
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the subscription service.
type Repository interface {
	GetActivePlanByCode(code string) (*models.SubscriptionPlan, error)
	ListActivePlans() ([]models.SubscriptionPlan, error)
	GetByID(id string) (*models.UserSubscription, error)
	GetByIDForUser(id, userID string) (*models.UserSubscription, error)
	GetCurrentActive(userID string, at time.Time) (*models.UserSubscription, error)
	ListByUser(userID string) ([]models.UserSubscription, error)
	Create(sub *models.UserSubscription) error
	Update(sub *models.UserSubscription) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetActivePlanByCode(code string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.Where("code = ? AND is_active = ?", code, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *gormRepository) ListActivePlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Where("is_active = ?", true).Order("price").Find(&plans).Error
	return plans, err
}

func (r *gormRepository) GetByID(id string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) GetByIDForUser(id, userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").Where("id = ? AND user_id = ?", id, userID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetCurrentActive returns the window containing `at`, preferring the one
// that runs the longest.
func (r *gormRepository) GetCurrentActive(userID string, at time.Time) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ? AND started_at <= ? AND (expires_at IS NULL OR expires_at > ?)",
			userID, models.SubscriptionStatusActive, at, at).
		Order("expires_at DESC NULLS FIRST").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) ListByUser(userID string) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := r.db.Preload("Plan").Where("user_id = ?", userID).Order("started_at DESC").Find(&subs).Error
	return subs, err
}

func (r *gormRepository) Create(sub *models.UserSubscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) Update(sub *models.UserSubscription) error {
	return r.db.Save(sub).Error
}
