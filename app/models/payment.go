package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPaid     = "paid"
	PaymentStatusPending  = "pending"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment records a bank round trip. Exactly one of PurchaseID and
// SubscriptionID is set.
type Payment struct {
	ID             string            `gorm:"type:uuid;primaryKey" json:"id"`
	TxnUUID        string            `gorm:"type:varchar(64);uniqueIndex;not null" json:"txn_id"`
	Amount         float64           `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status         string            `gorm:"type:varchar(16);not null;index" json:"status"`
	PaidAt         *time.Time        `json:"paid_at,omitempty"`
	PurchaseID     *string           `gorm:"type:uuid;index" json:"purchase_id,omitempty"`
	SubscriptionID *string           `gorm:"type:uuid;index" json:"subscription_id,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	Purchase       *Purchase         `gorm:"foreignKey:PurchaseID" json:"-"`
	Subscription   *UserSubscription `gorm:"foreignKey:SubscriptionID" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
