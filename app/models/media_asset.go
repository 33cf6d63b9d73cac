package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AssetKindCover   = "cover"
	AssetKindTrailer = "trailer"
	AssetKindVideo   = "video"
)

// MediaAsset is a single playable or displayable resource. URLs may point at
// external providers (YouTube, RuTube) or plain files.
type MediaAsset struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      string    `gorm:"type:varchar(16);not null" json:"kind" validate:"oneof=cover trailer video"`
	MimeType  string    `gorm:"type:varchar(64)" json:"mime_type"`
	URL       string    `gorm:"type:text;uniqueIndex;not null" json:"url" validate:"required,url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
