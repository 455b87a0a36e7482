package models

import (
	"time"

	"github.com/noortales/backend/pkg/types"
)

// Subscription is the locally persisted mirror of a Stripe subscription.
// Rows are upserted by StripeSubscriptionID on every lifecycle event and are
// never deleted; cancellation is a status transition so the historical plan
// and period remain visible.
type Subscription struct {
	ID     string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	// StripeCustomerID is stable once assigned at first checkout.
	StripeCustomerID string `gorm:"column:stripe_customer_id;type:varchar(128);not null" json:"stripe_customer_id"`
	// StripeSubscriptionID keys the reconciliation upsert. It changes when a
	// customer re-subscribes after a cancellation.
	StripeSubscriptionID string `gorm:"column:stripe_subscription_id;type:varchar(128);not null;uniqueIndex" json:"stripe_subscription_id"`
	// Status is the provider's status string, stored as an opaque pass-through.
	Status   types.SubscriptionStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	PlanType types.PlanType           `gorm:"column:plan_type;type:varchar(32);not null" json:"plan_type"`
	// CurrentPeriodStart/End bound the paid-for interval, for renewal display.
	CurrentPeriodStart *time.Time `gorm:"column:current_period_start;default:null" json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `gorm:"column:current_period_end;default:null" json:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// Entitled reports whether this row currently grants premium access.
func (s *Subscription) Entitled(now time.Time) bool {
	return s != nil &&
		s.Status == types.SubscriptionStatusActive &&
		s.CurrentPeriodEnd != nil &&
		s.CurrentPeriodEnd.After(now)
}
