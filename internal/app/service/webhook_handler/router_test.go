package webhook_handler

import (
	"context"
	"encoding/json"
	"testing"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/require"

	"github.com/noortales/backend/pkg/metrics"
)

func testEvent(eventType, objectJSON string) *stripe.Event {
	return &stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: json.RawMessage(objectJSON)},
	}
}

func TestRoute_DispatchesByEventType(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)
	ctx := context.Background()

	outcome, err := h.route(ctx, testEvent("checkout.session.completed", `{"id":"cs_1"}`))
	require.NoError(t, err)
	require.Equal(t, metrics.WebhookOutcomeHandled, outcome)

	outcome, err = h.route(ctx, testEvent("invoice.payment_succeeded", `{"id":"in_1"}`))
	require.NoError(t, err)
	require.Equal(t, metrics.WebhookOutcomeHandled, outcome)

	outcome, err = h.route(ctx, testEvent("customer.subscription.updated", `{"id":"sub_1"}`))
	require.NoError(t, err)
	require.Equal(t, metrics.WebhookOutcomeHandled, outcome)

	outcome, err = h.route(ctx, testEvent("customer.subscription.deleted", `{"id":"sub_1"}`))
	require.NoError(t, err)
	require.Equal(t, metrics.WebhookOutcomeHandled, outcome)

	require.Equal(t, []string{"cs_1"}, rec.checkoutCalls)
	require.Equal(t, []string{"in_1"}, rec.invoiceCalls)
	require.Equal(t, []string{"sub_1"}, rec.updatedCalls)
	require.Equal(t, []string{"sub_1"}, rec.deletedCalls)
}

func TestRoute_UnknownTypeIgnored(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	outcome, err := h.route(context.Background(), testEvent("charge.refunded", `{"id":"ch_1"}`))
	require.NoError(t, err)
	require.Equal(t, metrics.WebhookOutcomeIgnored, outcome)
	require.Empty(t, rec.checkoutCalls)
}

func TestRoute_MalformedObject(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	outcome, err := h.route(context.Background(), testEvent("invoice.payment_succeeded", `[1,2]`))
	require.ErrorIs(t, err, ErrMalformedEvent)
	require.Equal(t, metrics.WebhookOutcomeFailed, outcome)
}
