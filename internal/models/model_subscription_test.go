package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noortales/backend/pkg/types"
)

func TestSubscriptionEntitled(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	active := &Subscription{Status: types.SubscriptionStatusActive, CurrentPeriodEnd: &future}
	require.True(t, active.Entitled(now))

	expired := &Subscription{Status: types.SubscriptionStatusActive, CurrentPeriodEnd: &past}
	require.False(t, expired.Entitled(now))

	canceled := &Subscription{Status: types.SubscriptionStatusCanceled, CurrentPeriodEnd: &future}
	require.False(t, canceled.Entitled(now))

	noPeriod := &Subscription{Status: types.SubscriptionStatusActive}
	require.False(t, noPeriod.Entitled(now))

	var nilRow *Subscription
	require.False(t, nilRow.Entitled(now))
}

func TestLevelForPoints(t *testing.T) {
	require.Equal(t, 1, LevelForPoints(0))
	require.Equal(t, 1, LevelForPoints(99))
	require.Equal(t, 2, LevelForPoints(100))
	require.Equal(t, 3, LevelForPoints(250))
	require.Equal(t, 1, LevelForPoints(-5))
}
