package entity

import (
	"database/sql"
	"time"

	"github.com/greenquest-lab/backend/pkg/enum"
)

type QuestStatus string

var (
	QuestRecommended = enum.New(QuestStatus("recommended"))
	QuestInProgress  = enum.New(QuestStatus("in-progress"))
	QuestCompleted   = enum.New(QuestStatus("completed"))
)

type Quest struct {
	Base

	Title       string
	Description string
	Points      int
	Category    string
	Difficulty  string
}

type QuestTask struct {
	Base

	QuestID     string `gorm:"index"`
	Quest       Quest  `gorm:"foreignKey:QuestID"`
	Title       string
	Description sql.NullString
	OrderIndex  int
	IsRequired  bool
}

// UserQuest is the progress of a user through a quest. It is created on the
// first start and never deleted.
type UserQuest struct {
	UserID  string `gorm:"primaryKey"`
	QuestID string `gorm:"primaryKey"`

	Status      QuestStatus
	Progress    int
	StartedAt   sql.NullTime
	CompletedAt sql.NullTime
	ScoredAt    sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserTaskProgress struct {
	UserID  string `gorm:"primaryKey"`
	TaskID  string `gorm:"primaryKey"`
	QuestID string `gorm:"primaryKey"`

	IsCompleted bool
	CompletedAt sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserTaskProgress) TableName() string {
	return "user_task_progress"
}
