package model

import (
	"database/sql"
	"time"

	"github.com/greenquest-lab/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

// FormatNullTime returns an empty string for a null time.
func FormatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(DefaultTimeLayout)
}

func ConvertUserQuest(userQuest *entity.UserQuest) UserQuest {
	if userQuest == nil {
		return UserQuest{}
	}

	return UserQuest{
		UserID:      userQuest.UserID,
		QuestID:     userQuest.QuestID,
		Status:      string(userQuest.Status),
		Progress:    userQuest.Progress,
		StartedAt:   FormatNullTime(userQuest.StartedAt),
		CompletedAt: FormatNullTime(userQuest.CompletedAt),
	}
}

func ConvertUserTaskProgress(progress *entity.UserTaskProgress) UserTaskProgress {
	if progress == nil {
		return UserTaskProgress{}
	}

	return UserTaskProgress{
		UserID:      progress.UserID,
		TaskID:      progress.TaskID,
		QuestID:     progress.QuestID,
		IsCompleted: progress.IsCompleted,
		CompletedAt: FormatNullTime(progress.CompletedAt),
	}
}

func ConvertQuestTask(task entity.QuestTask) QuestTask {
	return QuestTask{
		ID:          task.ID,
		QuestID:     task.QuestID,
		Title:       task.Title,
		Description: task.Description.String,
		OrderIndex:  task.OrderIndex,
		IsRequired:  task.IsRequired,
	}
}

func ConvertReward(reward entity.Reward) Reward {
	return Reward{
		ID:          reward.ID,
		Title:       reward.Title,
		Description: reward.Description,
		PointsCost:  reward.PointsCost,
		Category:    reward.Category,
	}
}

func ConvertProfile(profile *entity.Profile) Profile {
	if profile == nil {
		return Profile{}
	}

	return Profile{
		UserID:              profile.UserID,
		DisplayName:         profile.DisplayName,
		SustainabilityScore: profile.SustainabilityScore,
	}
}
