package types

import "time"

// PlanType identifies the billing cadence of a premium plan.
type PlanType string

const (
	PlanTypeMonthly PlanType = "monthly"
	PlanTypeYearly  PlanType = "yearly"
)

func (p PlanType) Valid() bool {
	return p == PlanTypeMonthly || p == PlanTypeYearly
}

// SubscriptionStatus mirrors the status string reported by Stripe. It is
// stored as an opaque pass-through; only Active is interpreted locally for
// the entitlement check.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// UserSubscriptionInfo is the API view of a user's subscription row.
type UserSubscriptionInfo struct {
	Status             SubscriptionStatus `json:"status"`
	PlanType           PlanType           `json:"plan_type"`
	CurrentPeriodStart *time.Time         `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time         `json:"current_period_end"`
	Premium            bool               `json:"premium"`
}
