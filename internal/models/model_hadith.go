package models

import "time"

// Hadith is a narration entry with its attribution.
type Hadith struct {
	ID       string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Text     string `gorm:"column:text;type:text;not null" json:"text"`
	Narrator string `gorm:"column:narrator;type:varchar(128)" json:"narrator"`
	// Source is the collection reference, e.g. "Sahih al-Bukhari 13".
	Source    string    `gorm:"column:source;type:varchar(128)" json:"source"`
	Topic     string    `gorm:"column:topic;type:varchar(64);index" json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hadith) TableName() string { return "hadith" }
