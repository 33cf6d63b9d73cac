package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase grants permanent access to one content item. Rows are immutable
// once created except for administrative refund/delete.
type Purchase struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index:ux_purchases_user_content,unique,priority:1" json:"user_id"`
	ContentID   string    `gorm:"type:uuid;not null;index:ux_purchases_user_content,unique,priority:2" json:"content_id"`
	PurchasedAt time.Time `gorm:"not null;autoCreateTime" json:"purchased_at"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content     *Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
