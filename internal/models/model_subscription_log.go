package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubscriptionLog records every reconciliation applied to a subscription row.
// Use case: troubleshooting out-of-order or replayed webhook deliveries.
type SubscriptionLog struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);index:idx_sub_log_user_id,priority:1;not null"`
	// EventType is the provider event that triggered the change.
	EventType string `gorm:"column:event_type;type:varchar(64);not null"`
	// Before stores the row state prior to the change, null on first insert.
	Before datatypes.JSONType[*Subscription] `gorm:"column:before;type:jsonb;default:'null'"`
	// After stores the row state written by the change.
	After     datatypes.JSONType[*Subscription] `gorm:"column:after;type:jsonb;default:'null'"`
	CreatedAt time.Time
}

func (SubscriptionLog) TableName() string {
	return "subscription_log"
}
