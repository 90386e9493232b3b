package rewardutil

import (
	"testing"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

var rewards = []entity.Reward{
	{Base: entity.Base{ID: "r1"}, PointsCost: 500, Category: "Education"},
	{Base: entity.Base{ID: "r2"}, PointsCost: 750, Category: "Education"},
	{Base: entity.Base{ID: "r3"}, PointsCost: 1000, Category: "Government"},
}

func TestIsAffordable(t *testing.T) {
	require.True(t, IsAffordable(800, 800))
	require.True(t, IsAffordable(801, 800))
	require.False(t, IsAffordable(799, 800))
	require.True(t, IsAffordable(0, 0))
}

func TestProjectAndMilestone(t *testing.T) {
	projected := Project(800, rewards)
	require.Len(t, projected, 3)
	require.True(t, projected[0].IsAffordable)
	require.True(t, projected[1].IsAffordable)
	require.False(t, projected[2].IsAffordable)

	milestone := NextMilestone(800, projected)
	require.NotNil(t, milestone)
	require.Equal(t, "r3", milestone.Reward.ID)
	require.Equal(t, 1000, milestone.Reward.PointsCost)
	require.Equal(t, 200, milestone.PointsNeeded)
}

func TestNextMilestone_Cheapest(t *testing.T) {
	projected := Project(100, []entity.Reward{
		{Base: entity.Base{ID: "big"}, PointsCost: 2500},
		{Base: entity.Base{ID: "small"}, PointsCost: 500},
	})

	milestone := NextMilestone(100, projected)
	require.Equal(t, "small", milestone.Reward.ID)
	require.Equal(t, 400, milestone.PointsNeeded)

	require.Nil(t, NextMilestone(5000, projected))
	require.Nil(t, NextMilestone(0, nil))
}

func TestFilterByCategory(t *testing.T) {
	projected := Project(0, rewards)
	require.Len(t, FilterByCategory(projected, ""), 3)
	require.Len(t, FilterByCategory(projected, CategoryAll), 3)
	require.Len(t, FilterByCategory(projected, "Education"), 2)
	require.Len(t, FilterByCategory(projected, "Government"), 1)
	require.Empty(t, FilterByCategory(projected, "Resources"))
}

func TestCategories(t *testing.T) {
	require.Equal(t, []string{"All", "Education", "Government"}, Categories(Project(0, rewards)))
	require.Equal(t, []string{"All"}, Categories(nil))
}
