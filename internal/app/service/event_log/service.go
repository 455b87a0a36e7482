package event_log

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/tool"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a webhook event log row. Best effort: the
// audit trail must never fail or slow down event handling. Nil input is
// ignored.
func (s *Service) Save(ctx context.Context, entry *models.WebhookEventLog) {
	go func() {
		if entry == nil {
			return
		}
		if entry.ID == "" {
			entry.ID = tool.GenerateUUIDV7()
		}
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save webhook event log: %v", err)
		}
	}()
}
