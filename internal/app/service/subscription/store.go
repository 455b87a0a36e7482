package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/noortales/backend/internal/models"
	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/tool"
	"github.com/noortales/backend/pkg/types"
)

// Store persists subscription rows. The gorm implementation is used in
// production; tests substitute an in-memory fake to exercise the
// reconciliation paths without a database.
type Store interface {
	// Upsert inserts the row or, when a row with the same
	// stripe_subscription_id exists, updates only updateCols. The statement is
	// a single atomic INSERT ... ON CONFLICT, so replays and concurrent
	// deliveries settle last-writer-wins.
	Upsert(ctx context.Context, row *models.Subscription, updateCols []string, eventType string) error
	// UpdateStatus sets status and updated_at on the row keyed by the
	// subscription id, leaving everything else untouched. Missing row: no-op.
	UpdateStatus(ctx context.Context, stripeSubscriptionID string, status types.SubscriptionStatus, at time.Time) error
	GetBySubscriptionID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error)
	// GetByUserID returns the most recently updated row for the user, nil
	// when the user never subscribed.
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
}

type gormStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func newGormStore(db *gorm.DB, log *zap.SugaredLogger) *gormStore {
	return &gormStore{db: db, log: log}
}

func (g *gormStore) Upsert(ctx context.Context, row *models.Subscription, updateCols []string, eventType string) error {
	before, err := g.GetBySubscriptionID(ctx, row.StripeSubscriptionID)
	if err != nil {
		return err
	}

	if row.ID == "" {
		row.ID = tool.GenerateUUIDV7()
	}
	row.UpdatedAt = time.Now()

	if err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns(updateCols),
	}).Create(row).Error; err != nil {
		return fmt.Errorf("failed to upsert subscription %s: %w", row.StripeSubscriptionID, err)
	}

	g.saveChangeLog(ctx, eventType, before, row)
	return nil
}

func (g *gormStore) UpdateStatus(ctx context.Context, stripeSubscriptionID string, status types.SubscriptionStatus, at time.Time) error {
	before, err := g.GetBySubscriptionID(ctx, stripeSubscriptionID)
	if err != nil {
		return err
	}

	res := g.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		Updates(map[string]any{"status": status, "updated_at": at})
	if res.Error != nil {
		return fmt.Errorf("failed to update subscription status %s: %w", stripeSubscriptionID, res.Error)
	}
	if res.RowsAffected == 0 {
		logctx.FromCtx(ctx, g.log).Warnw("status update for unknown subscription", "stripe_subscription_id", stripeSubscriptionID, "status", status)
		return nil
	}

	if before != nil {
		after := *before
		after.Status = status
		after.UpdatedAt = at
		g.saveChangeLog(ctx, "customer.subscription.deleted", before, &after)
	}
	return nil
}

func (g *gormStore) GetBySubscriptionID(ctx context.Context, stripeSubscriptionID string) (*models.Subscription, error) {
	var row models.Subscription
	err := g.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load subscription %s: %w", stripeSubscriptionID, err)
	}
	return &row, nil
}

func (g *gormStore) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	var row models.Subscription
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load subscription for user %s: %w", userID, err)
	}
	return &row, nil
}

// saveChangeLog records the before/after pair asynchronously; failures only
// log since the audit trail must never fail a reconciliation.
func (g *gormStore) saveChangeLog(ctx context.Context, eventType string, before, after *models.Subscription) {
	entry := &models.SubscriptionLog{
		ID:        tool.GenerateUUIDV7(),
		UserID:    after.UserID,
		EventType: eventType,
		Before:    datatypes.NewJSONType(before),
		After:     datatypes.NewJSONType(after),
	}
	go func() {
		if err := g.db.Create(entry).Error; err != nil {
			logctx.FromCtx(ctx, g.log).Errorf("failed to save subscription log: %v", err)
		}
	}()
}
