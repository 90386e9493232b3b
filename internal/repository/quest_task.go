package repository

import (
	"context"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
)

type QuestTaskRepository interface {
	Create(ctx context.Context, task *entity.QuestTask) error
	GetByID(ctx context.Context, id string) (*entity.QuestTask, error)
	GetByQuestID(ctx context.Context, questID string) ([]entity.QuestTask, error)
	GetAll(ctx context.Context) ([]entity.QuestTask, error)
}

type questTaskRepository struct{}

func NewQuestTaskRepository() *questTaskRepository {
	return &questTaskRepository{}
}

func (r *questTaskRepository) Create(ctx context.Context, task *entity.QuestTask) error {
	return xcontext.DB(ctx).Create(task).Error
}

func (r *questTaskRepository) GetByID(ctx context.Context, id string) (*entity.QuestTask, error) {
	result := entity.QuestTask{}
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questTaskRepository) GetByQuestID(ctx context.Context, questID string) ([]entity.QuestTask, error) {
	result := []entity.QuestTask{}
	err := xcontext.DB(ctx).
		Where("quest_id=?", questID).
		Order("order_index ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questTaskRepository) GetAll(ctx context.Context) ([]entity.QuestTask, error) {
	result := []entity.QuestTask{}
	if err := xcontext.DB(ctx).Order("quest_id ASC, order_index ASC, id ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
