package billing

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	subscription "github.com/noortales/backend/internal/app/service/subscription"
	"github.com/noortales/backend/internal/platform/stripepay"
	cfgpkg "github.com/noortales/backend/pkg/config"
	"github.com/noortales/backend/pkg/logctx"
	"github.com/noortales/backend/pkg/types"
)

// ErrNoSubscription is returned when an operation needs an existing billing
// relationship and the user has none.
var ErrNoSubscription = errors.New("user has no subscription")

// CheckoutGateway is the write side of the payments provider used by
// checkout and portal flows; tests substitute a fake.
type CheckoutGateway interface {
	CreateCustomer(ctx context.Context, userID, email string) (*stripe.Customer, error)
	CreateCheckoutSession(ctx context.Context, customerID, userID string, plan types.PlanType) (*stripe.CheckoutSession, error)
	CreatePortalSession(ctx context.Context, customerID string) (*stripe.BillingPortalSession, error)
}

// subscriptionReader is the slice of the subscription service billing needs.
type subscriptionReader interface {
	CustomerIDForUser(ctx context.Context, userID string) (string, error)
	GetUserSubscriptionInfo(ctx context.Context, userID string) (*types.UserSubscriptionInfo, error)
}

// Service owns the user-facing billing flows: starting a checkout, opening
// the self-service portal, and reading subscription status.
type Service struct {
	gw     CheckoutGateway
	subSvc subscriptionReader
	cfg    *cfgpkg.Config
	log    *zap.SugaredLogger
}

func NewService(client *stripepay.Client, subSvc *subscription.Service, cfg *cfgpkg.Config, log *zap.SugaredLogger) *Service {
	return &Service{gw: client, subSvc: subSvc, cfg: cfg, log: log}
}

// StartCheckout opens a checkout session for the plan and returns its id.
// The customer id from a previous subscription is reused so a returning user
// keeps a single billing customer; a first-time user gets a fresh customer
// carrying user_id metadata, which the webhook reconciler later reads back.
func (s *Service) StartCheckout(ctx context.Context, userID, email string, plan types.PlanType) (string, error) {
	if !plan.Valid() {
		return "", fmt.Errorf("invalid plan type %q", plan)
	}

	customerID, err := s.subSvc.CustomerIDForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if customerID == "" {
		cust, err := s.gw.CreateCustomer(ctx, userID, email)
		if err != nil {
			return "", err
		}
		customerID = cust.ID
		logctx.FromCtx(ctx, s.log).Infow("created billing customer", "user_id", userID, "customer_id", customerID)
	}

	sess, err := s.gw.CreateCheckoutSession(ctx, customerID, userID, plan)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// OpenPortal creates a billing portal session and returns its URL. Requires
// an existing subscription row with a customer id.
func (s *Service) OpenPortal(ctx context.Context, userID string) (string, error) {
	customerID, err := s.subSvc.CustomerIDForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if customerID == "" {
		return "", ErrNoSubscription
	}
	sess, err := s.gw.CreatePortalSession(ctx, customerID)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// GetStatus returns the user's subscription view with the premium flag.
func (s *Service) GetStatus(ctx context.Context, userID string) (*types.UserSubscriptionInfo, error) {
	return s.subSvc.GetUserSubscriptionInfo(ctx, userID)
}
