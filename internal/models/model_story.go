package models

import (
	"time"

	"gorm.io/datatypes"
)

// Story is a children's story in the content catalog. Premium stories are
// listed for everyone but their body is withheld from non-entitled readers.
type Story struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Title   string `gorm:"column:title;type:varchar(256);not null" json:"title"`
	Content string `gorm:"column:content;type:text;not null" json:"content"`
	Excerpt string `gorm:"column:excerpt;type:text" json:"excerpt"`
	// Category groups stories, e.g. "daily", "prophets", "companions".
	Category string `gorm:"column:category;type:varchar(64);index" json:"category"`
	// Moral is the lesson line displayed at the end of the story.
	Moral     string `gorm:"column:moral;type:text" json:"moral"`
	ImageURL  string `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	AudioURL  string `gorm:"column:audio_url;type:varchar(512)" json:"audio_url"`
	IsPremium bool   `gorm:"column:is_premium;not null;default:false" json:"is_premium"`
	// PublishDate is a calendar date (YYYY-MM-DD); the daily story lookup
	// matches it against today.
	PublishDate string `gorm:"column:publish_date;type:varchar(10);index" json:"publish_date"`
	// Extra stores optional structured content such as quiz questions.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb;default:'{}'" json:"extra"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Story) TableName() string { return "story" }
