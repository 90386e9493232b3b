package repository

import (
	"context"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *entity.Badge) error
	GetByName(ctx context.Context, name string) (*entity.Badge, error)
	GetAll(ctx context.Context) ([]entity.Badge, error)
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

// Create keeps one badge per name, a second call refreshes the description
// and icon.
func (r *badgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"description": badge.Description,
				"icon_type":   badge.IconType,
			}),
		}).Create(badge).Error
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*entity.Badge, error) {
	result := &entity.Badge{}
	if err := xcontext.DB(ctx).Where("name=?", name).Take(result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) GetAll(ctx context.Context) ([]entity.Badge, error) {
	result := []entity.Badge{}
	if err := xcontext.DB(ctx).Order("created_at ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
