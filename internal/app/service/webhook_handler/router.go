package webhook_handler

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"

	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/metrics"
)

// route dispatches a verified event by type. Unrecognized event types are
// acknowledged without action: the provider retries on error responses, and
// an error for a type we do not care about would retry forever.
func (h *Handler) route(ctx context.Context, event *stripe.Event) (string, error) {
	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return metrics.WebhookOutcomeFailed, fmt.Errorf("%w: checkout session: %v", ErrMalformedEvent, err)
		}
		return metrics.WebhookOutcomeHandled, h.rec.ReconcileCheckoutCompleted(ctx, &sess)

	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return metrics.WebhookOutcomeFailed, fmt.Errorf("%w: invoice: %v", ErrMalformedEvent, err)
		}
		return metrics.WebhookOutcomeHandled, h.rec.ReconcileInvoicePaid(ctx, &inv)

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return metrics.WebhookOutcomeFailed, fmt.Errorf("%w: subscription: %v", ErrMalformedEvent, err)
		}
		return metrics.WebhookOutcomeHandled, h.rec.ReconcileSubscriptionUpdated(ctx, &sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return metrics.WebhookOutcomeFailed, fmt.Errorf("%w: subscription: %v", ErrMalformedEvent, err)
		}
		return metrics.WebhookOutcomeHandled, h.rec.ReconcileSubscriptionDeleted(ctx, &sub)
	}

	logctx.FromCtx(ctx, h.Logger).Infow("webhook_event_ignored", "event_type", event.Type)
	return metrics.WebhookOutcomeIgnored, nil
}
