package repository

import (
	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

// subscriptionAdminRepository implements the SubscriptionAdminRepository interface
type subscriptionAdminRepository struct {
	db *gorm.DB
}

// NewSubscriptionAdminRepository creates a new subscription admin repository instance
func NewSubscriptionAdminRepository(db *gorm.DB) SubscriptionAdminRepository {
	return &subscriptionAdminRepository{db: db}
}

func (r *subscriptionAdminRepository) ListPlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.Order("period_months ASC, price ASC").Find(&plans).Error
	return plans, err
}

func (r *subscriptionAdminRepository) GetPlan(id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *subscriptionAdminRepository) CreatePlan(plan *models.SubscriptionPlan) error {
	return r.db.Create(plan).Error
}

func (r *subscriptionAdminRepository) UpdatePlan(plan *models.SubscriptionPlan) error {
	return r.db.Save(plan).Error
}

func (r *subscriptionAdminRepository) DeletePlan(id string) error {
	return r.db.Delete(&models.SubscriptionPlan{}, "id = ?", id).Error
}

func (r *subscriptionAdminRepository) ListUserSubscriptions(userID string) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := r.db.
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *subscriptionAdminRepository) List(offset, limit int) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := r.db.
		Preload("Plan").
		Preload("User").
		Order("started_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error
	return subs, err
}

func (r *subscriptionAdminRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.UserSubscription{}).Count(&count).Error
	return count, err
}

func (r *subscriptionAdminRepository) Get(id string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.Preload("Plan").Preload("User").First(&sub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionAdminRepository) Update(sub *models.UserSubscription) error {
	return r.db.Save(sub).Error
}

func (r *subscriptionAdminRepository) Delete(id string) error {
	return r.db.Delete(&models.UserSubscription{}, "id = ?", id).Error
}
