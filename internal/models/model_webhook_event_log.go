package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookEventLogStatus string

const (
	WebhookEventLogStatusReceived     WebhookEventLogStatus = "received"
	WebhookEventLogStatusHandled      WebhookEventLogStatus = "handled"
	WebhookEventLogStatusHandleFailed WebhookEventLogStatus = "handle_failed"
)

// WebhookEventLog is the audit trail of inbound Stripe events. Writes are
// best effort and never fail the webhook request.
type WebhookEventLog struct {
	ID        string  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	EventID   string  `gorm:"column:event_id;type:varchar(128);index" json:"event_id"`
	EventType string  `gorm:"column:event_type;type:varchar(64);not null" json:"event_type"`
	UserID    *string `gorm:"column:user_id;type:varchar(64)" json:"user_id"`
	TraceID   string  `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	// Payload is the raw event envelope as delivered by the provider.
	Payload   datatypes.JSON        `gorm:"column:payload;type:jsonb" json:"payload"`
	Result    *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result"`
	Status    WebhookEventLogStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func (WebhookEventLog) TableName() string { return "webhook_event_log" }
