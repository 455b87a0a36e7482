package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	wh "github.com/noortales/backend/internal/app/service/webhook_handler"
	cfgpkg "github.com/noortales/backend/pkg/config"
)

func newWebhookRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &cfgpkg.Config{}
	cfg.Stripe.WebhookSecret = "whsec_test"
	h := wh.NewHandler(cfg, nil, nil, zap.NewNop().Sugar())

	r := gin.New()
	g := r.Group("/api/v1/billing/webhook")
	RegisterWebhookRoutes(g, h)
	return r
}

func TestRegisterWebhookRoutes_RegistersEndpoint(t *testing.T) {
	r := newWebhookRouter(t)

	found := false
	for _, rt := range r.Routes() {
		if rt.Method == http.MethodPost && rt.Path == "/api/v1/billing/webhook/stripe" {
			found = true
		}
	}
	require.True(t, found)
}

func TestApiStripeWebhook_MissingSignatureHeader(t *testing.T) {
	r := newWebhookRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook/stripe", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Stripe-Signature")
}

func TestApiStripeWebhook_InvalidSignature(t *testing.T) {
	r := newWebhookRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/webhook/stripe", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "webhook error")
}
