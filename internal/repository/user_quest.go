package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserQuestRepository interface {
	Start(ctx context.Context, userQuest *entity.UserQuest) (bool, error)
	Complete(ctx context.Context, userID, questID string, progress int, completedAt sql.NullTime) (bool, error)
	MarkScored(ctx context.Context, userID, questID string, scoredAt time.Time) (bool, error)
	Get(ctx context.Context, userID, questID string) (*entity.UserQuest, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.UserQuest, error)
}

type userQuestRepository struct{}

func NewUserQuestRepository() *userQuestRepository {
	return &userQuestRepository{}
}

// Start inserts the row or restarts an existing one that is not completed.
// It reports false when no row changed, which includes the case of a quest
// the user has already completed.
func (r *userQuestRepository) Start(ctx context.Context, userQuest *entity.UserQuest) (bool, error) {
	result := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(userQuest)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 1 {
		return true, nil
	}

	result = xcontext.DB(ctx).
		Model(&entity.UserQuest{}).
		Where("user_id=? AND quest_id=? AND status<>?",
			userQuest.UserID, userQuest.QuestID, entity.QuestCompleted).
		Updates(map[string]any{
			"status":     userQuest.Status,
			"progress":   userQuest.Progress,
			"started_at": userQuest.StartedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// Complete moves the row to completed. Only one of several concurrent callers
// observes true.
func (r *userQuestRepository) Complete(
	ctx context.Context, userID, questID string, progress int, completedAt sql.NullTime,
) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.UserQuest{}).
		Where("user_id=? AND quest_id=? AND status<>?", userID, questID, entity.QuestCompleted).
		Updates(map[string]any{
			"status":       entity.QuestCompleted,
			"progress":     progress,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// MarkScored stamps a completed row the first time its points are credited.
// It reports false when the row is not completed or was already scored.
func (r *userQuestRepository) MarkScored(
	ctx context.Context, userID, questID string, scoredAt time.Time,
) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.UserQuest{}).
		Where("user_id=? AND quest_id=? AND status=? AND scored_at IS NULL",
			userID, questID, entity.QuestCompleted).
		Update("scored_at", sql.NullTime{Time: scoredAt, Valid: true})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *userQuestRepository) Get(ctx context.Context, userID, questID string) (*entity.UserQuest, error) {
	result := entity.UserQuest{}
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND quest_id=?", userID, questID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userQuestRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserQuest, error) {
	result := []entity.UserQuest{}
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
