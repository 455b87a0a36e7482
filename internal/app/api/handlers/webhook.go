package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	wh "github.com/noortales/backend/internal/app/service/webhook_handler"
	"github.com/noortales/backend/pkg/logctx"
)

const webhookBodyLimit = 1 << 20 // 1 MiB

// @Summary      Stripe Webhook
// @Description  Handles Stripe subscription lifecycle events. The body is the raw signed event JSON.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe signature over the raw body"
// @Success      200  {object}  map[string]bool
// @Failure      400  {string}  string
// @Failure      500  {string}  string
// @Router       /api/v1/billing/webhook/stripe [post]
// ApiStripeWebhook receives Stripe webhook deliveries. The body must reach
// signature verification untouched, so it is read raw here rather than bound.
func ApiStripeWebhook(h *wh.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, webhookBodyLimit)
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "failed to read request body")
			return
		}

		sig := c.GetHeader("Stripe-Signature")
		if sig == "" {
			c.String(http.StatusBadRequest, "missing Stripe-Signature header")
			return
		}

		err = h.HandleEvent(c.Request.Context(), payload, sig)
		switch {
		case errors.Is(err, wh.ErrInvalidSignature), errors.Is(err, wh.ErrMalformedEvent):
			c.String(http.StatusBadRequest, "webhook error: %v", err)
		case err != nil:
			// 5xx invites the provider's own redelivery for transient failures.
			logctx.FromGin(c, h.Logger).Errorw("webhook_stripe_handle_error", "error", err.Error())
			c.String(http.StatusInternalServerError, "internal error")
		default:
			c.JSON(http.StatusOK, gin.H{"received": true})
		}
	}
}

func RegisterWebhookRoutes(r gin.IRouter, h *wh.Handler) {
	r.POST("/stripe", ApiStripeWebhook(h))
}
