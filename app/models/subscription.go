package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// SubscriptionDaysPerMonth is the fixed period approximation used everywhere:
// a "month" is always 30 days, never a calendar month.
const SubscriptionDaysPerMonth = 30

// CancellationWindowDays bounds how long after activation a subscription may
// still be cancelled.
const CancellationWindowDays = 14

type SubscriptionPlan struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code" validate:"required"`
	Name         string    `gorm:"type:text;not null" json:"name" validate:"required"`
	PeriodMonths int       `gorm:"not null" json:"period_months" validate:"gte=1"`
	Price        float64   `gorm:"type:numeric(12,2);not null" json:"price" validate:"gte=0"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *SubscriptionPlan) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// Period returns the plan duration under the 30-day month approximation.
func (p *SubscriptionPlan) Period() time.Duration {
	return time.Duration(p.PeriodMonths) * SubscriptionDaysPerMonth * 24 * time.Hour
}

type UserSubscription struct {
	ID        string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string            `gorm:"type:uuid;not null;index:ux_user_subs_user_plan_start,unique,priority:1" json:"user_id"`
	PlanID    string            `gorm:"type:uuid;not null;index:ux_user_subs_user_plan_start,unique,priority:2" json:"plan_id"`
	Status    string            `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`
	StartedAt time.Time         `gorm:"not null;index:ux_user_subs_user_plan_start,unique,priority:3" json:"started_at"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
	Plan      *SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (s *UserSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// IsActiveAt reports whether the subscription window contains the instant t.
// A nil ExpiresAt means unbounded.
func (s *UserSubscription) IsActiveAt(t time.Time) bool {
	return s.Status == SubscriptionStatusActive &&
		!s.StartedAt.After(t) &&
		(s.ExpiresAt == nil || s.ExpiresAt.After(t))
}

// IsFutureAt reports whether the subscription is an active window that has not
// started yet (a queued extension).
func (s *UserSubscription) IsFutureAt(t time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.StartedAt.After(t)
}

// CanBeCancelledAt reports whether cancellation is still allowed: within the
// 14-day window of StartedAt, still active, with a future expiry.
func (s *UserSubscription) CanBeCancelledAt(t time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	if s.ExpiresAt == nil || !s.ExpiresAt.After(t) {
		return false
	}
	days := int(t.Sub(s.StartedAt).Hours() / 24)
	return days <= CancellationWindowDays
}

// DaysLeftAt returns whole days until expiry, zero when expired or unbounded.
func (s *UserSubscription) DaysLeftAt(t time.Time) int {
	if s.ExpiresAt == nil || !s.ExpiresAt.After(t) {
		return 0
	}
	return int(s.ExpiresAt.Sub(t).Hours() / 24)
}

// IsExpiringSoonAt reports an expiry less than 7 days away.
func (s *UserSubscription) IsExpiringSoonAt(t time.Time) bool {
	left := s.DaysLeftAt(t)
	return left > 0 && left <= 7
}

// ActualStatusAt resolves the display status: a stored "active" row whose
// window has passed reads as expired.
func (s *UserSubscription) ActualStatusAt(t time.Time) string {
	if s.Status == SubscriptionStatusCancelled {
		return SubscriptionStatusCancelled
	}
	if s.ExpiresAt != nil {
		if s.ExpiresAt.After(t) {
			return SubscriptionStatusActive
		}
		return SubscriptionStatusExpired
	}
	return s.Status
}
