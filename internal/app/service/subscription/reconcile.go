package subscription

import (
	"context"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"

	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/types"
)

// Column sets written by each reconciliation path when a row already exists
// for the subscription id. Inserts always write the full row.
var (
	fullUpdateCols   = []string{"user_id", "stripe_customer_id", "status", "plan_type", "current_period_start", "current_period_end", "updated_at"}
	periodUpdateCols = []string{"user_id", "stripe_customer_id", "status", "current_period_start", "current_period_end", "updated_at"}
)

// ReconcileCheckoutCompleted records the subscription created by a completed
// checkout session. The session metadata must carry the user id seeded at
// session-creation time; without it the payment cannot be associated with an
// account at all.
func (s *Service) ReconcileCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	userID := sess.Metadata["user_id"]
	if userID == "" {
		return fmt.Errorf("checkout session %s: %w", sess.ID, ErrUnresolvableUser)
	}
	if sess.Subscription == nil || sess.Subscription.ID == "" {
		return fmt.Errorf("checkout session %s carries no subscription reference", sess.ID)
	}

	// The session payload holds only a subscription reference; fetch the full
	// snapshot for status and period bounds.
	snap, err := s.gw.RetrieveSubscription(ctx, sess.Subscription.ID)
	if err != nil {
		return err
	}

	plan := types.PlanType(sess.Metadata["plan_type"])
	if !plan.Valid() {
		plan = s.planFromItems(snap)
	}

	customerID := ""
	if sess.Customer != nil {
		customerID = sess.Customer.ID
	}
	if customerID == "" && snap.Customer != nil {
		customerID = snap.Customer.ID
	}

	start, end := periodBounds(snap)
	row := &models.Subscription{
		UserID:               userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: snap.ID,
		Status:               types.SubscriptionStatus(snap.Status),
		PlanType:             plan,
		CurrentPeriodStart:   start,
		CurrentPeriodEnd:     end,
	}
	return s.store.Upsert(ctx, row, fullUpdateCols, "checkout.session.completed")
}

// ReconcileInvoicePaid refreshes status and period bounds after a successful
// subscription invoice. One-time invoices carry no subscription reference and
// are ignored. PlanType on an existing row is left untouched.
func (s *Service) ReconcileInvoicePaid(ctx context.Context, inv *stripe.Invoice) error {
	subID := invoiceSubscriptionID(inv)
	if subID == "" {
		logctx.FromCtx(ctx, s.log).Infow("invoice without subscription, ignoring", "invoice_id", inv.ID)
		return nil
	}

	customerID := ""
	if inv.Customer != nil {
		customerID = inv.Customer.ID
	}
	userID, err := s.resolveUserID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("invoice %s: %w", inv.ID, err)
	}

	snap, err := s.gw.RetrieveSubscription(ctx, subID)
	if err != nil {
		return err
	}

	start, end := periodBounds(snap)
	row := &models.Subscription{
		UserID:               userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: snap.ID,
		Status:               types.SubscriptionStatus(snap.Status),
		// Only used on first insert; the update path excludes plan_type.
		PlanType:           s.planFromItems(snap),
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   end,
	}
	return s.store.Upsert(ctx, row, periodUpdateCols, "invoice.payment_succeeded")
}

// ReconcileSubscriptionUpdated mirrors an upstream subscription change,
// re-deriving the plan type from the price line item.
func (s *Service) ReconcileSubscriptionUpdated(ctx context.Context, sub *stripe.Subscription) error {
	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	userID, err := s.resolveUserID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("subscription %s: %w", sub.ID, err)
	}

	start, end := periodBounds(sub)
	row := &models.Subscription{
		UserID:               userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: sub.ID,
		Status:               types.SubscriptionStatus(sub.Status),
		PlanType:             s.planFromItems(sub),
		CurrentPeriodStart:   start,
		CurrentPeriodEnd:     end,
	}
	return s.store.Upsert(ctx, row, fullUpdateCols, "customer.subscription.updated")
}

// ReconcileSubscriptionDeleted marks the row with the terminal status
// reported by the event, preserving customer, plan, and period fields for
// historical display. A missing row is a no-op; absence of local state is
// never an error here.
func (s *Service) ReconcileSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	if _, err := s.resolveUserID(ctx, customerID); err != nil {
		return fmt.Errorf("subscription %s: %w", sub.ID, err)
	}
	return s.store.UpdateStatus(ctx, sub.ID, types.SubscriptionStatus(sub.Status), time.Now())
}

func (s *Service) planFromItems(sub *stripe.Subscription) types.PlanType {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return types.PlanTypeMonthly
	}
	price := sub.Items.Data[0].Price
	return s.cfg.PlanTypeForPrice(price.ID, price.LookupKey)
}

// periodBounds reads the paid-for interval from the first subscription item,
// where the Stripe API reports it.
func periodBounds(sub *stripe.Subscription) (*time.Time, *time.Time) {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil, nil
	}
	item := sub.Items.Data[0]
	var start, end *time.Time
	if item.CurrentPeriodStart > 0 {
		t := time.Unix(item.CurrentPeriodStart, 0).UTC()
		start = &t
	}
	if item.CurrentPeriodEnd > 0 {
		t := time.Unix(item.CurrentPeriodEnd, 0).UTC()
		end = &t
	}
	return start, end
}

func invoiceSubscriptionID(inv *stripe.Invoice) string {
	if inv.Parent == nil || inv.Parent.SubscriptionDetails == nil || inv.Parent.SubscriptionDetails.Subscription == nil {
		return ""
	}
	return inv.Parent.SubscriptionDetails.Subscription.ID
}
