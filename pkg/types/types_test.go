package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanTypeValid(t *testing.T) {
	require.True(t, PlanTypeMonthly.Valid())
	require.True(t, PlanTypeYearly.Valid())
	require.False(t, PlanType("weekly").Valid())
	require.False(t, PlanType("").Valid())
}

func TestContentTypeValid(t *testing.T) {
	require.True(t, ContentTypeStory.Valid())
	require.True(t, ContentTypeDua.Valid())
	require.True(t, ContentTypeHadith.Valid())
	require.False(t, ContentType("video").Valid())
}

func TestPointsActivityPoints(t *testing.T) {
	require.Equal(t, 10, PointsActivityStoryRead.Points())
	require.Equal(t, 5, PointsActivityDuaRead.Points())
	require.Equal(t, 20, PointsActivityQuizCompleted.Points())
	require.Zero(t, PointsActivity("unknown").Points())
}
