package models

import "time"

// Profile holds the display identity and gamification state of a user.
// The user id itself comes from the identity provider; a profile row is
// created lazily on first access.
type Profile struct {
	ID          string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID      string `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	DisplayName string `gorm:"column:display_name;type:varchar(128)" json:"display_name"`
	AvatarColor string `gorm:"column:avatar_color;type:varchar(16)" json:"avatar_color"`
	Points      int    `gorm:"column:points;not null;default:0" json:"points"`
	Level       int    `gorm:"column:level;not null;default:1" json:"level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }

// LevelForPoints derives the level from a points total: level n is reached
// at 100*(n-1) points.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return points/100 + 1
}
