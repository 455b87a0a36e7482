package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/noortales/backend/internal/app/api/server"
	billing "github.com/noortales/backend/internal/app/service/billing"
	content "github.com/noortales/backend/internal/app/service/content"
	eventlog "github.com/noortales/backend/internal/app/service/event_log"
	profile "github.com/noortales/backend/internal/app/service/profile"
	subscription "github.com/noortales/backend/internal/app/service/subscription"
	webhookhandler "github.com/noortales/backend/internal/app/service/webhook_handler"
	"github.com/noortales/backend/internal/platform/db"
	"github.com/noortales/backend/internal/platform/stripepay"
	"github.com/noortales/backend/pkg/config"
	"github.com/noortales/backend/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	stripepay.Module,
	server.Module,
	subscription.Module,
	billing.Module,
	content.Module,
	profile.Module,
	eventlog.Module,
	webhookhandler.Module,
)
