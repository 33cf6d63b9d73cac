package models

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

// ContentReview is an upsertable 1..5 rating plus optional comment, unique
// per (user, content). Averages are computed by SQL AVG on read.
type ContentReview struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	ContentID string    `gorm:"type:uuid;primaryKey" json:"content_id"`
	Rating    int       `gorm:"not null" json:"rating" validate:"gte=1,lte=5"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// ClampRating folds any input into the accepted 1..5 range.
func ClampRating(value int) int {
	if value < RatingMin {
		return RatingMin
	}
	if value > RatingMax {
		return RatingMax
	}
	return value
}

type Favorite struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	ContentID string    `gorm:"type:uuid;primaryKey" json:"content_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Content   *Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

type WatchlistEntry struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	ContentID string    `gorm:"type:uuid;primaryKey" json:"content_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Content   *Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}

// WatchProgress stores playback position per (user, content, season, episode).
// SeasonNum and EpisodeNum are zero for movies.
type WatchProgress struct {
	UserID      string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	ContentID   string    `gorm:"type:uuid;primaryKey" json:"content_id"`
	SeasonNum   int       `gorm:"primaryKey;autoIncrement:false" json:"season_num"`
	EpisodeNum  int       `gorm:"primaryKey;autoIncrement:false" json:"episode_num"`
	PositionSec int       `gorm:"not null;default:0" json:"position_sec"`
	DurationSec int       `gorm:"not null;default:0" json:"duration_sec"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	WatchedAt   time.Time `gorm:"not null;autoUpdateTime;index" json:"watched_at"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content     *Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

func (WatchProgress) TableName() string {
	return "watch_history"
}

// Finalize stamps the report time and derives completion. Reaching 95% of
// a known duration marks the row completed; an already-completed flag is
// never cleared by a lower position.
func (p *WatchProgress) Finalize(now time.Time) {
	p.WatchedAt = now
	if p.DurationSec > 0 && p.PositionSec >= p.DurationSec*95/100 {
		p.Completed = true
	}
}
