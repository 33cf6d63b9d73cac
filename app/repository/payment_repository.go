package repository

import (
	"time"

	"github.com/Lomoncivici/Kyrsach4/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) GetByTxnUUID(txn string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("txn_uuid = ?", txn).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).Count(&count).Error
	return count, err
}

// GetDailyStats aggregates payments per calendar day for the analytics views.
func (r *paymentRepository) GetDailyStats(startDate, endDate time.Time) ([]DailyPaymentStats, error) {
	var stats []DailyPaymentStats
	err := r.db.Model(&models.Payment{}).
		Select(`DATE(created_at) AS date,
			COUNT(*) AS payments,
			COUNT(*) FILTER (WHERE status = ?) AS paid,
			COALESCE(SUM(amount) FILTER (WHERE status = ?), 0) AS revenue`,
			models.PaymentStatusPaid, models.PaymentStatusPaid).
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&stats).Error
	return stats, err
}

func (r *paymentRepository) SumPaidSince(since time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND created_at >= ?", models.PaymentStatusPaid, since).
		Scan(&total).Error
	return total, err
}

func (r *paymentRepository) GetByID(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByUser returns payments tied to the user's purchases or subscriptions.
func (r *paymentRepository) ListByUser(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Joins("LEFT JOIN purchases ON purchases.id = payments.purchase_id").
		Joins("LEFT JOIN user_subscriptions ON user_subscriptions.id = payments.subscription_id").
		Where("purchases.user_id = ? OR user_subscriptions.user_id = ?", userID, userID).
		Order("payments.created_at DESC").
		Find(&payments).Error
	return payments, err
}
