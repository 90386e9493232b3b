package domain

import (
	"context"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/domain/statistic"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
}

type statisticDomain struct {
	profileRepo repository.ProfileRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	profileRepo repository.ProfileRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		profileRepo: profileRepo,
		redisClient: redisClient,
	}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	profiles, err := common.LoadSnapshot(ctx, d.redisClient, common.RedisKeyLeaderBoard, d.profileRepo.GetLeaderBoard)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := statistic.ComputeRanking(profiles, xcontext.RequestUserID(ctx))
	return &model.GetLeaderBoardResponse{
		Entries:     entries,
		CurrentUser: statistic.FindCurrentUser(entries),
		Summary:     statistic.Summarize(entries, xcontext.Configs(ctx).Quest.ChampionScore),
	}, nil
}
