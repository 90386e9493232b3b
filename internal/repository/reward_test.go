package repository

import (
	"testing"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_rewardRepository_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	repo := NewRewardRepository()
	require.NoError(t, repo.Create(ctx, &entity.Reward{
		Base:       entity.Base{ID: "reward0"},
		Title:      "Seed Swap Voucher",
		PointsCost: 100,
		Category:   "Resources",
	}))

	rewards, err := repo.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, rewards, 4)

	costs := []int{}
	for _, r := range rewards {
		costs = append(costs, r.PointsCost)
	}
	require.Equal(t, []int{100, 500, 750, 1000}, costs)
}

func Test_badgeRepository(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	badgeRepo := NewBadgeRepository()
	badges, err := badgeRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, badges, 3)

	badge, err := badgeRepo.GetByName(ctx, testutil.Badge2.Name)
	require.NoError(t, err)
	require.Equal(t, testutil.Badge2.ID, badge.ID)

	userBadgeRepo := NewUserBadgeRepository()
	require.NoError(t, userBadgeRepo.Create(ctx, &testutil.UserBadge1))

	userBadges, err := userBadgeRepo.GetByUserID(ctx, testutil.User1.UserID)
	require.NoError(t, err)
	require.Len(t, userBadges, 1)
	require.Equal(t, testutil.Badge1.ID, userBadges[0].BadgeID)
}
