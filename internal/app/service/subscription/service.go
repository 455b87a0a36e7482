package subscription

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/noortales/backend/internal/platform/stripepay"
	cfgpkg "github.com/noortales/backend/pkg/config"
)

// ErrUnresolvableUser marks an event that cannot be tied to a local account
// because the provider-side metadata lacks a user id. Redelivery cannot fix
// it; callers log and acknowledge instead of returning a server error.
var ErrUnresolvableUser = errors.New("user id not resolvable from provider metadata")

// ProviderGateway resolves opaque Stripe references to full snapshots.
// Webhook payloads may be partial, so reconciliation re-reads through this
// interface; tests substitute a fake.
type ProviderGateway interface {
	RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error)
}

// Service reconciles provider subscription lifecycle events onto local rows
// and serves subscription reads.
type Service struct {
	db    *gorm.DB
	store Store
	gw    ProviderGateway
	cfg   *cfgpkg.Config
	log   *zap.SugaredLogger
}

func NewService(db *gorm.DB, client *stripepay.Client, cfg *cfgpkg.Config, log *zap.SugaredLogger) *Service {
	return &Service{db: db, store: newGormStore(db, log), gw: client, cfg: cfg, log: log}
}

// resolveUserID recovers the owning account from customer metadata written at
// customer-creation time. Re-deriving it on every event keeps reconciliation
// correct even when a prior event was never persisted locally.
func (s *Service) resolveUserID(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", ErrUnresolvableUser
	}
	cust, err := s.gw.RetrieveCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}
	userID := cust.Metadata["user_id"]
	if userID == "" {
		return "", ErrUnresolvableUser
	}
	return userID, nil
}
