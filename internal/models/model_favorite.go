package models

import (
	"time"

	"github.com/noortales/backend/pkg/types"
)

// Favorite marks a catalog entry saved by a user. One row per
// (user, content type, content id) triple; toggling deletes the row.
type Favorite struct {
	ID          string            `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID      string            `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_fav_user_content,priority:1" json:"user_id"`
	ContentType types.ContentType `gorm:"column:content_type;type:varchar(16);not null;uniqueIndex:idx_fav_user_content,priority:2" json:"content_type"`
	ContentID   string            `gorm:"column:content_id;type:uuid;not null;uniqueIndex:idx_fav_user_content,priority:3" json:"content_id"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (Favorite) TableName() string { return "favorite" }
