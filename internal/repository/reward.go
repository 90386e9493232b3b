package repository

import (
	"context"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
)

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByTitle(ctx context.Context, title string) (*entity.Reward, error)
	GetList(ctx context.Context) ([]entity.Reward, error)
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetByTitle(ctx context.Context, title string) (*entity.Reward, error) {
	result := entity.Reward{}
	if err := xcontext.DB(ctx).Take(&result, "title=?", title).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetList returns rewards from the cheapest to the most expensive.
func (r *rewardRepository) GetList(ctx context.Context) ([]entity.Reward, error) {
	result := []entity.Reward{}
	if err := xcontext.DB(ctx).Order("points_cost ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
