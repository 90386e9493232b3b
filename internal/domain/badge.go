package domain

import (
	"context"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/domain/badge"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
	"golang.org/x/sync/errgroup"
)

type BadgeDomain interface {
	GetList(context.Context, *model.GetListBadgeRequest) (*model.GetListBadgeResponse, error)
	GetMyBadges(context.Context, *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error)
}

type badgeDomain struct {
	badgeRepo     repository.BadgeRepository
	userBadgeRepo repository.UserBadgeRepository
	redisClient   xredis.Client
}

func NewBadgeDomain(
	badgeRepo repository.BadgeRepository,
	userBadgeRepo repository.UserBadgeRepository,
	redisClient xredis.Client,
) *badgeDomain {
	return &badgeDomain{
		badgeRepo:     badgeRepo,
		userBadgeRepo: userBadgeRepo,
		redisClient:   redisClient,
	}
}

func (d *badgeDomain) GetList(
	ctx context.Context, req *model.GetListBadgeRequest,
) (*model.GetListBadgeResponse, error) {
	badges, err := d.project(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetListBadgeResponse{Badges: badges}, nil
}

func (d *badgeDomain) GetMyBadges(
	ctx context.Context, req *model.GetMyBadgesRequest,
) (*model.GetMyBadgesResponse, error) {
	filter := badge.Filter(req.Filter)
	switch filter {
	case "", badge.FilterAll, badge.FilterEarned, badge.FilterAvailable:
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid filter %s", req.Filter)
	}

	badges, err := d.project(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetMyBadgesResponse{
		Badges: badge.ApplyFilter(badges, filter),
		Stats:  badge.Stats(badges),
	}, nil
}

func (d *badgeDomain) project(ctx context.Context, userID string) ([]model.Badge, error) {
	var badges []entity.Badge
	var userBadges []entity.UserBadge

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		badges, err = common.LoadSnapshot(egCtx, d.redisClient, common.RedisKeyBadges,
			d.badgeRepo.GetAll)
		return err
	})

	if userID != "" {
		eg.Go(func() error {
			var err error
			userBadges, err = common.LoadSnapshot(egCtx, d.redisClient, common.RedisKeyUserBadges(userID),
				func(ctx context.Context) ([]entity.UserBadge, error) {
					return d.userBadgeRepo.GetByUserID(ctx, userID)
				})
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load badges: %v", err)
		return nil, errorx.Unknown
	}

	return badge.Project(badges, userBadges), nil
}
