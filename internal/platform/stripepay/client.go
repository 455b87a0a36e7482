package stripepay

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	stripeclient "github.com/stripe/stripe-go/v82/client"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/noortales/backend/pkg/config"
	"github.com/noortales/backend/pkg/types"
)

// Client wraps the Stripe API behind an explicitly constructed handle so the
// services depend on an injected value instead of the SDK's package-global
// key. It satisfies the gateway interfaces declared by its consumers.
type Client struct {
	api *stripeclient.API
	cfg *cfgpkg.Config
	log *zap.SugaredLogger
}

func New(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Client {
	api := &stripeclient.API{}
	api.Init(cfg.Stripe.SecretKey, nil)
	return &Client{api: api, cfg: cfg, log: log}
}

// RetrieveSubscription fetches the full subscription snapshot. Webhook
// payloads may carry partial objects, so reconciliation always re-reads.
func (c *Client) RetrieveSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{Params: stripe.Params{Context: ctx}}
	sub, err := c.api.Subscriptions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve subscription %s: %w", id, err)
	}
	return sub, nil
}

// RetrieveCustomer fetches a customer, including the metadata written at
// customer-creation time.
func (c *Client) RetrieveCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}
	cust, err := c.api.Customers.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve customer %s: %w", id, err)
	}
	return cust, nil
}

// CreateCustomer creates a billing customer carrying the local user id in
// metadata. The reconciler later reads this metadata back to associate
// customer-level events with the account.
func (c *Client) CreateCustomer(ctx context.Context, userID, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}
	if email != "" {
		params.Email = stripe.String(email)
	}
	params.AddMetadata("user_id", userID)
	cust, err := c.api.Customers.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create customer: %w", err)
	}
	return cust, nil
}

// CreateCheckoutSession opens a subscription-mode checkout session for the
// given plan, seeding user_id and plan_type into session metadata.
func (c *Client) CreateCheckoutSession(ctx context.Context, customerID, userID string, plan types.PlanType) (*stripe.CheckoutSession, error) {
	priceID, err := c.cfg.PriceIDForPlan(plan)
	if err != nil {
		return nil, err
	}
	params := &stripe.CheckoutSessionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(c.cfg.Stripe.SuccessURL),
		CancelURL:  stripe.String(c.cfg.Stripe.CancelURL),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("plan_type", string(plan))
	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return sess, nil
}

// CreatePortalSession opens a billing portal session for self-service plan
// management.
func (c *Client) CreatePortalSession(ctx context.Context, customerID string) (*stripe.BillingPortalSession, error) {
	params := &stripe.BillingPortalSessionParams{
		Params:    stripe.Params{Context: ctx},
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(c.cfg.Stripe.PortalReturnURL),
	}
	sess, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create portal session: %w", err)
	}
	return sess, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
