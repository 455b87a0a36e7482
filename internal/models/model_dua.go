package models

import "time"

// Dua is a supplication entry with its Arabic text and translations.
type Dua struct {
	ID              string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Title           string    `gorm:"column:title;type:varchar(256);not null" json:"title"`
	Arabic          string    `gorm:"column:arabic;type:text;not null" json:"arabic"`
	Transliteration string    `gorm:"column:transliteration;type:text" json:"transliteration"`
	Translation     string    `gorm:"column:translation;type:text" json:"translation"`
	Occasion        string    `gorm:"column:occasion;type:varchar(128)" json:"occasion"`
	Category        string    `gorm:"column:category;type:varchar(64);index" json:"category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Dua) TableName() string { return "dua" }
