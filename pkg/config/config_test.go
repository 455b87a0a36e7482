package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noortales/backend/pkg/types"
)

func testConfig() *Config {
	c := &Config{}
	c.Stripe.PriceMonthly = "price_m"
	c.Stripe.PriceYearly = "price_y"
	return c
}

func TestPriceIDForPlan(t *testing.T) {
	c := testConfig()

	id, err := c.PriceIDForPlan(types.PlanTypeMonthly)
	require.NoError(t, err)
	require.Equal(t, "price_m", id)

	id, err = c.PriceIDForPlan(types.PlanTypeYearly)
	require.NoError(t, err)
	require.Equal(t, "price_y", id)

	_, err = c.PriceIDForPlan("weekly")
	require.Error(t, err)
}

func TestPlanTypeForPrice(t *testing.T) {
	c := testConfig()

	// Lookup key names a plan directly.
	require.Equal(t, types.PlanTypeYearly, c.PlanTypeForPrice("price_m", "yearly"))
	// Falls back to the configured price id.
	require.Equal(t, types.PlanTypeYearly, c.PlanTypeForPrice("price_y", ""))
	// Unknown prices default to monthly.
	require.Equal(t, types.PlanTypeMonthly, c.PlanTypeForPrice("price_unknown", ""))
	require.Equal(t, types.PlanTypeMonthly, c.PlanTypeForPrice("", ""))
}
