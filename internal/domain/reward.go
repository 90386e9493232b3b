package domain

import (
	"context"
	"errors"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/domain/rewardutil"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type RewardDomain interface {
	GetList(context.Context, *model.GetListRewardRequest) (*model.GetListRewardResponse, error)
	GetMyRewards(context.Context, *model.GetMyRewardsRequest) (*model.GetMyRewardsResponse, error)
}

type rewardDomain struct {
	rewardRepo  repository.RewardRepository
	profileRepo repository.ProfileRepository
	redisClient xredis.Client
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	profileRepo repository.ProfileRepository,
	redisClient xredis.Client,
) *rewardDomain {
	return &rewardDomain{
		rewardRepo:  rewardRepo,
		profileRepo: profileRepo,
		redisClient: redisClient,
	}
}

func (d *rewardDomain) GetList(
	ctx context.Context, req *model.GetListRewardRequest,
) (*model.GetListRewardResponse, error) {
	points, rewards, err := d.load(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	projected := rewardutil.Project(points, rewards)
	return &model.GetListRewardResponse{
		Rewards:    rewardutil.FilterByCategory(projected, req.Category),
		Categories: rewardutil.Categories(projected),
	}, nil
}

func (d *rewardDomain) GetMyRewards(
	ctx context.Context, req *model.GetMyRewardsRequest,
) (*model.GetMyRewardsResponse, error) {
	points, rewards, err := d.load(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	projected := rewardutil.Project(points, rewards)
	return &model.GetMyRewardsResponse{
		Points:        points,
		Rewards:       rewardutil.FilterByCategory(projected, req.Category),
		Categories:    rewardutil.Categories(projected),
		NextMilestone: rewardutil.NextMilestone(points, projected),
	}, nil
}

// load returns the current score of the user, 0 for anonymous users and users
// without a profile, with the reward catalog. The score is always read from
// the store since affordability must follow every point change.
func (d *rewardDomain) load(ctx context.Context, userID string) (int, []entity.Reward, error) {
	var points int
	var rewards []entity.Reward

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		rewards, err = common.LoadSnapshot(egCtx, d.redisClient, common.RedisKeyRewards, d.rewardRepo.GetList)
		return err
	})

	if userID != "" {
		eg.Go(func() error {
			profile, err := d.profileRepo.GetByUserID(egCtx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}

				return err
			}

			points = profile.SustainabilityScore
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load rewards: %v", err)
		return 0, nil, errorx.Unknown
	}

	return points, rewards, nil
}
