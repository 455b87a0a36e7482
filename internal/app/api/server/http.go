package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/noortales/backend/docs"
	"github.com/noortales/backend/internal/app/api/handlers"
	mw "github.com/noortales/backend/internal/app/api/middleware"
	billsvc "github.com/noortales/backend/internal/app/service/billing"
	contentsvc "github.com/noortales/backend/internal/app/service/content"
	profilesvc "github.com/noortales/backend/internal/app/service/profile"
	subsvc "github.com/noortales/backend/internal/app/service/subscription"
	wh "github.com/noortales/backend/internal/app/service/webhook_handler"
	cfgpkg "github.com/noortales/backend/pkg/config"
	metrics "github.com/noortales/backend/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request tracing only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	webhookHandler *wh.Handler,
	billing *billsvc.Service,
	subs *subsvc.Service,
	content *contentsvc.Service,
	profiles *profilesvc.Service,
) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Webhook group: no session auth; the Stripe signature verified over the
	// raw body inside the handler is the authentication.
	webhooks := r.Group("/api/v1/billing/webhook")
	webhooks.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterWebhookRoutes(webhooks, webhookHandler)

	// Content catalog: public, with optional session resolution for premium
	// entitlement.
	catalog := r.Group("/api/v1")
	catalog.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.OptionalAuthMiddleware(cfg))
	handlers.RegisterContentRoutes(catalog, content, subs)

	// User-facing authenticated APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.AuthMiddleware(cfg))
	handlers.RegisterBillingRoutes(apiV1.Group("/billing"), billing)
	handlers.RegisterProfileRoutes(apiV1, profiles)

	// Admin APIs
	admin := r.Group("/api/v1/admin")
	admin.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.AdminAuthMiddleware(cfg))
	handlers.RegisterAdminRoutes(admin, subs, content)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
