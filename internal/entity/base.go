package entity

import (
	"context"
	"time"

	"github.com/greenquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Quest{},
		&QuestTask{},
		&UserQuest{},
		&UserTaskProgress{},
		&Badge{},
		&UserBadge{},
		&Reward{},
		&Profile{},
	)
}
