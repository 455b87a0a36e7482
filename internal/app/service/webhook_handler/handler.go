package webhook_handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	eventlog "github.com/noortales/backend/internal/app/service/event_log"
	subscription "github.com/noortales/backend/internal/app/service/subscription"
	models "github.com/noortales/backend/internal/models"
	cfgpkg "github.com/noortales/backend/pkg/config"
	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/metrics"
)

// ErrInvalidSignature rejects a payload whose Stripe-Signature header does
// not verify over the exact raw body bytes.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

// ErrMalformedEvent rejects a verified payload whose event data cannot be
// decoded into the expected object shape.
var ErrMalformedEvent = errors.New("malformed event payload")

// Reconciler applies provider lifecycle events to local subscription state.
// Satisfied by the subscription service; tests substitute a stub.
type Reconciler interface {
	ReconcileCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error
	ReconcileInvoicePaid(ctx context.Context, inv *stripe.Invoice) error
	ReconcileSubscriptionUpdated(ctx context.Context, sub *stripe.Subscription) error
	ReconcileSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error
}

// auditSink receives immutable copies of every delivery for the audit trail.
type auditSink interface {
	Save(ctx context.Context, entry *models.WebhookEventLog)
}

// Handler verifies, audits, and routes inbound Stripe webhook events.
type Handler struct {
	cfg    *cfgpkg.Config
	rec    Reconciler
	events auditSink
	Logger *zap.SugaredLogger
}

func NewHandler(cfg *cfgpkg.Config, sub *subscription.Service, events *eventlog.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{cfg: cfg, rec: sub, events: events, Logger: log}
}

// HandleEvent processes one raw webhook delivery. The payload must be the
// exact bytes read off the wire; any re-serialization breaks the signature.
//
// Error contract: ErrInvalidSignature / ErrMalformedEvent are the caller's
// fault (4xx). An event that is well-formed but cannot be tied to a local
// user is logged and swallowed, since redelivery cannot supply the missing
// metadata. Anything else propagates so the provider redelivers.
func (h *Handler) HandleEvent(ctx context.Context, payload []byte, sigHeader string) (resErr error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, h.cfg.Stripe.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	log := logctx.FromCtx(ctx, h.Logger).With("event_id", event.ID, "event_type", event.Type)
	log.Infow("webhook_event_received")

	var traceID string
	if v, ok := ctx.Value("traceID").(string); ok {
		traceID = v
	}
	h.events.Save(ctx, &models.WebhookEventLog{
		EventID:   event.ID,
		EventType: string(event.Type),
		TraceID:   traceID,
		Payload:   datatypes.JSON(payload),
		Status:    models.WebhookEventLogStatusReceived,
	})

	outcome, resErr := h.route(ctx, &event)
	unresolvable := errors.Is(resErr, subscription.ErrUnresolvableUser)
	if unresolvable {
		outcome = metrics.WebhookOutcomeUnresolvable
	} else if resErr != nil {
		outcome = metrics.WebhookOutcomeFailed
	}
	metrics.WebhookEvents.WithLabelValues(string(event.Type), outcome).Inc()

	resMap := map[string]any{"outcome": outcome}
	if resErr != nil {
		resMap["error"] = resErr.Error()
	}
	resBytes, _ := json.Marshal(resMap)
	status := models.WebhookEventLogStatusHandled
	if resErr != nil {
		status = models.WebhookEventLogStatusHandleFailed
	}
	h.events.Save(ctx, &models.WebhookEventLog{
		EventID:   event.ID,
		EventType: string(event.Type),
		TraceID:   traceID,
		Payload:   datatypes.JSON(payload),
		Result:    lo.ToPtr(datatypes.JSON(resBytes)),
		Status:    status,
	})

	if unresolvable {
		// Terminal data-quality failure: loud, but acknowledged. Returning an
		// error would make the provider redeliver an event that can never be
		// associated with an account.
		log.Errorw("webhook_event_dropped_unresolvable", "error", resErr.Error())
		return nil
	}
	if resErr != nil {
		log.Errorw("webhook_event_handle_error", "error", resErr.Error())
		return resErr
	}
	log.Infow("webhook_event_handled", "outcome", outcome)
	return nil
}
