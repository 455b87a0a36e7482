package webhook_handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	subscription "github.com/noortales/backend/internal/app/service/subscription"
	models "github.com/noortales/backend/internal/models"
	cfgpkg "github.com/noortales/backend/pkg/config"
)

const testWebhookSecret = "whsec_test_secret"

type stubReconciler struct {
	checkoutCalls []string
	invoiceCalls  []string
	updatedCalls  []string
	deletedCalls  []string
	err           error
}

func (s *stubReconciler) ReconcileCheckoutCompleted(_ context.Context, sess *stripe.CheckoutSession) error {
	s.checkoutCalls = append(s.checkoutCalls, sess.ID)
	return s.err
}

func (s *stubReconciler) ReconcileInvoicePaid(_ context.Context, inv *stripe.Invoice) error {
	s.invoiceCalls = append(s.invoiceCalls, inv.ID)
	return s.err
}

func (s *stubReconciler) ReconcileSubscriptionUpdated(_ context.Context, sub *stripe.Subscription) error {
	s.updatedCalls = append(s.updatedCalls, sub.ID)
	return s.err
}

func (s *stubReconciler) ReconcileSubscriptionDeleted(_ context.Context, sub *stripe.Subscription) error {
	s.deletedCalls = append(s.deletedCalls, sub.ID)
	return s.err
}

type nopSink struct{}

func (nopSink) Save(context.Context, *models.WebhookEventLog) {}

func newTestHandler(rec Reconciler) *Handler {
	cfg := &cfgpkg.Config{}
	cfg.Stripe.WebhookSecret = testWebhookSecret
	return &Handler{cfg: cfg, rec: rec, events: nopSink{}, Logger: zap.NewNop().Sugar()}
}

// signPayload builds a Stripe-Signature header over the exact payload bytes,
// the same scheme the provider uses: HMAC-SHA256 of "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", at.Unix(), payload)))
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType, objectJSON string) []byte {
	return []byte(fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":%s}}`, eventType, objectJSON))
}

func TestHandleEvent_RoutesCheckoutCompleted(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	payload := eventPayload("checkout.session.completed", `{"id":"cs_1","metadata":{"user_id":"user-1"}}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, h.HandleEvent(context.Background(), payload, sig))
	require.Equal(t, []string{"cs_1"}, rec.checkoutCalls)
}

func TestHandleEvent_TamperedPayloadRejected(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	payload := eventPayload("checkout.session.completed", `{"id":"cs_1"}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())
	payload[len(payload)-2] ^= 0x01

	err := h.HandleEvent(context.Background(), payload, sig)
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.Empty(t, rec.checkoutCalls)
}

func TestHandleEvent_WrongSecretRejected(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	payload := eventPayload("invoice.payment_succeeded", `{"id":"in_1"}`)
	sig := signPayload(payload, "whsec_other", time.Now())

	err := h.HandleEvent(context.Background(), payload, sig)
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.Empty(t, rec.invoiceCalls)
}

func TestHandleEvent_StaleSignatureRejected(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	payload := eventPayload("invoice.payment_succeeded", `{"id":"in_1"}`)
	sig := signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

	err := h.HandleEvent(context.Background(), payload, sig)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleEvent_UnknownTypeAcknowledged(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	payload := eventPayload("some.future.event", `{"id":"obj_1"}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	require.NoError(t, h.HandleEvent(context.Background(), payload, sig))
	require.Empty(t, rec.checkoutCalls)
	require.Empty(t, rec.invoiceCalls)
	require.Empty(t, rec.updatedCalls)
	require.Empty(t, rec.deletedCalls)
}

func TestHandleEvent_UnresolvableUserAcknowledged(t *testing.T) {
	rec := &stubReconciler{err: fmt.Errorf("invoice in_1: %w", subscription.ErrUnresolvableUser)}
	h := newTestHandler(rec)

	payload := eventPayload("invoice.payment_succeeded", `{"id":"in_1"}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	// Redelivery cannot supply missing metadata, so the event is acknowledged.
	require.NoError(t, h.HandleEvent(context.Background(), payload, sig))
	require.Equal(t, []string{"in_1"}, rec.invoiceCalls)
}

func TestHandleEvent_TransientErrorPropagates(t *testing.T) {
	transient := errors.New("connection refused")
	rec := &stubReconciler{err: transient}
	h := newTestHandler(rec)

	payload := eventPayload("customer.subscription.updated", `{"id":"sub_1"}`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	err := h.HandleEvent(context.Background(), payload, sig)
	require.ErrorIs(t, err, transient)
	require.Equal(t, []string{"sub_1"}, rec.updatedCalls)
}

func TestHandleEvent_MalformedObjectRejected(t *testing.T) {
	rec := &stubReconciler{}
	h := newTestHandler(rec)

	payload := eventPayload("customer.subscription.deleted", `"not-an-object"`)
	sig := signPayload(payload, testWebhookSecret, time.Now())

	err := h.HandleEvent(context.Background(), payload, sig)
	require.ErrorIs(t, err, ErrMalformedEvent)
	require.Empty(t, rec.deletedCalls)
}
