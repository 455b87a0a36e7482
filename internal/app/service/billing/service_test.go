package billing

import (
	"context"
	"testing"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/noortales/backend/pkg/config"
	"github.com/noortales/backend/pkg/types"
)

type fakeSubReader struct {
	customerID string
	info       *types.UserSubscriptionInfo
}

func (f *fakeSubReader) CustomerIDForUser(context.Context, string) (string, error) {
	return f.customerID, nil
}

func (f *fakeSubReader) GetUserSubscriptionInfo(context.Context, string) (*types.UserSubscriptionInfo, error) {
	return f.info, nil
}

type fakeCheckoutGateway struct {
	createdCustomers []string
	sessionCustomer  string
	sessionPlan      types.PlanType
	portalCustomer   string
}

func (f *fakeCheckoutGateway) CreateCustomer(_ context.Context, userID, _ string) (*stripe.Customer, error) {
	f.createdCustomers = append(f.createdCustomers, userID)
	return &stripe.Customer{ID: "cus_new"}, nil
}

func (f *fakeCheckoutGateway) CreateCheckoutSession(_ context.Context, customerID, _ string, plan types.PlanType) (*stripe.CheckoutSession, error) {
	f.sessionCustomer = customerID
	f.sessionPlan = plan
	return &stripe.CheckoutSession{ID: "cs_1"}, nil
}

func (f *fakeCheckoutGateway) CreatePortalSession(_ context.Context, customerID string) (*stripe.BillingPortalSession, error) {
	f.portalCustomer = customerID
	return &stripe.BillingPortalSession{URL: "https://billing.stripe.com/session/xyz"}, nil
}

func newTestBilling(gw *fakeCheckoutGateway, sub *fakeSubReader) *Service {
	return &Service{gw: gw, subSvc: sub, cfg: &cfgpkg.Config{}, log: zap.NewNop().Sugar()}
}

func TestStartCheckout_ReusesExistingCustomer(t *testing.T) {
	gw := &fakeCheckoutGateway{}
	svc := newTestBilling(gw, &fakeSubReader{customerID: "cus_existing"})

	id, err := svc.StartCheckout(context.Background(), "user-1", "u@example.com", types.PlanTypeMonthly)
	require.NoError(t, err)
	require.Equal(t, "cs_1", id)
	require.Empty(t, gw.createdCustomers)
	require.Equal(t, "cus_existing", gw.sessionCustomer)
	require.Equal(t, types.PlanTypeMonthly, gw.sessionPlan)
}

func TestStartCheckout_CreatesCustomerForNewUser(t *testing.T) {
	gw := &fakeCheckoutGateway{}
	svc := newTestBilling(gw, &fakeSubReader{})

	id, err := svc.StartCheckout(context.Background(), "user-1", "u@example.com", types.PlanTypeYearly)
	require.NoError(t, err)
	require.Equal(t, "cs_1", id)
	require.Equal(t, []string{"user-1"}, gw.createdCustomers)
	require.Equal(t, "cus_new", gw.sessionCustomer)
}

func TestStartCheckout_RejectsInvalidPlan(t *testing.T) {
	gw := &fakeCheckoutGateway{}
	svc := newTestBilling(gw, &fakeSubReader{})

	_, err := svc.StartCheckout(context.Background(), "user-1", "u@example.com", "weekly")
	require.Error(t, err)
	require.Empty(t, gw.createdCustomers)
}

func TestOpenPortal_RequiresSubscription(t *testing.T) {
	svc := newTestBilling(&fakeCheckoutGateway{}, &fakeSubReader{})

	_, err := svc.OpenPortal(context.Background(), "user-1")
	require.ErrorIs(t, err, ErrNoSubscription)
}

func TestOpenPortal_ReturnsSessionURL(t *testing.T) {
	gw := &fakeCheckoutGateway{}
	svc := newTestBilling(gw, &fakeSubReader{customerID: "cus_1"})

	url, err := svc.OpenPortal(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "https://billing.stripe.com/session/xyz", url)
	require.Equal(t, "cus_1", gw.portalCustomer)
}
