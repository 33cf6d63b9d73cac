package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContentTypeMovie  = "movie"
	ContentTypeSeries = "series"
)

type Content struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	Type         string      `gorm:"type:varchar(12);not null;index" json:"type" validate:"oneof=movie series"`
	Title        string      `gorm:"type:text;uniqueIndex;not null" json:"title" validate:"required,min=1"`
	ReleaseYear  int         `gorm:"not null" json:"release_year" validate:"gte=1900,lte=2100"`
	Description  string      `gorm:"type:text" json:"description"`
	IsFree       bool        `gorm:"not null;default:false" json:"is_free"`
	Price        float64     `gorm:"type:numeric(10,2);not null;default:0" json:"price" validate:"gte=0"`
	CoverImageID *string     `gorm:"type:uuid" json:"-"`
	TrailerID    *string     `gorm:"type:uuid" json:"-"`
	VideoID      *string     `gorm:"type:uuid" json:"-"`
	CoverImage   *MediaAsset `gorm:"foreignKey:CoverImageID" json:"cover_image,omitempty"`
	Trailer      *MediaAsset `gorm:"foreignKey:TrailerID" json:"trailer,omitempty"`
	Video        *MediaAsset `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	Genres       []Genre     `gorm:"many2many:content_genres" json:"genres,omitempty"`
	Seasons      []Season    `gorm:"foreignKey:ContentID" json:"seasons,omitempty"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Content) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// CoverURL returns the cover image URL or empty string when unset.
func (c *Content) CoverURL() string {
	if c.CoverImage != nil {
		return c.CoverImage.URL
	}
	return ""
}

// TrailerURL returns the trailer URL or empty string when unset.
func (c *Content) TrailerURL() string {
	if c.Trailer != nil {
		return c.Trailer.URL
	}
	return ""
}

// VideoURL returns the main video URL or empty string when unset.
func (c *Content) VideoURL() string {
	if c.Video != nil {
		return c.Video.URL
	}
	return ""
}

type Genre struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name" validate:"required"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type ContentGenre struct {
	ContentID string `gorm:"type:uuid;primaryKey" json:"content_id"`
	GenreID   string `gorm:"type:uuid;primaryKey" json:"genre_id"`
}

type Season struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID string    `gorm:"type:uuid;not null;index:ux_seasons_content_num,unique,priority:1" json:"content_id"`
	SeasonNum int       `gorm:"not null;index:ux_seasons_content_num,unique,priority:2" json:"season_num"`
	Episodes  []Episode `gorm:"foreignKey:SeasonID" json:"episodes,omitempty"`
}

func (s *Season) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Episode struct {
	ID          string      `gorm:"type:uuid;primaryKey" json:"id"`
	SeasonID    string      `gorm:"type:uuid;not null;index:ux_episodes_season_num,unique,priority:1" json:"season_id"`
	EpisodeNum  int         `gorm:"not null;index:ux_episodes_season_num,unique,priority:2" json:"episode_num"`
	Title       string      `gorm:"type:text" json:"title"`
	DurationSec int         `gorm:"not null;default:0" json:"duration_sec"`
	VideoID     *string     `gorm:"type:uuid" json:"-"`
	Video       *MediaAsset `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (e *Episode) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// VideoURL returns the episode video URL or empty string when unset.
func (e *Episode) VideoURL() string {
	if e.Video != nil {
		return e.Video.URL
	}
	return ""
}
