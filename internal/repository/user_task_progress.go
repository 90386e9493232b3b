package repository

import (
	"context"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserTaskProgressRepository interface {
	Upsert(ctx context.Context, progress *entity.UserTaskProgress) error
	GetByUserID(ctx context.Context, userID string) ([]entity.UserTaskProgress, error)
	GetByUserAndQuest(ctx context.Context, userID, questID string) ([]entity.UserTaskProgress, error)
}

type userTaskProgressRepository struct{}

func NewUserTaskProgressRepository() *userTaskProgressRepository {
	return &userTaskProgressRepository{}
}

func (r *userTaskProgressRepository) Upsert(ctx context.Context, progress *entity.UserTaskProgress) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "task_id"},
				{Name: "quest_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_completed", "completed_at", "updated_at",
			}),
		}).Create(progress).Error
}

func (r *userTaskProgressRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserTaskProgress, error) {
	result := []entity.UserTaskProgress{}
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userTaskProgressRepository) GetByUserAndQuest(
	ctx context.Context, userID, questID string,
) ([]entity.UserTaskProgress, error) {
	result := []entity.UserTaskProgress{}
	err := xcontext.DB(ctx).
		Where("user_id=? AND quest_id=?", userID, questID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
