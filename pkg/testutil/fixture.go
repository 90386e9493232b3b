package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
)

var (
	// Users
	User1 = entity.Profile{UserID: "user1", DisplayName: "Asha Patel", SustainabilityScore: 2850}
	User2 = entity.Profile{UserID: "user2", DisplayName: "Ravi Kumar", SustainabilityScore: 2340}
	User3 = entity.Profile{UserID: "user3", DisplayName: "Meera", SustainabilityScore: 800}
	Users = []*entity.Profile{&User1, &User2, &User3}

	// Quests
	Quest1 = entity.Quest{
		Base:        entity.Base{ID: "quest1"},
		Title:       "Compost Champion",
		Description: "Turn farm waste into organic compost",
		Points:      150,
		Category:    "Soil",
		Difficulty:  "Easy",
	}

	Quest2 = entity.Quest{
		Base:        entity.Base{ID: "quest2"},
		Title:       "Drip Irrigation Setup",
		Description: "Install drip lines to save water",
		Points:      300,
		Category:    "Water",
		Difficulty:  "Medium",
	}

	Quest3 = entity.Quest{
		Base:        entity.Base{ID: "quest3"},
		Title:       "Soil Health Card",
		Description: "Apply for a government soil health card",
		Points:      100,
		Category:    "Government",
		Difficulty:  "Easy",
	}

	Quests = []*entity.Quest{&Quest1, &Quest2, &Quest3}

	// Tasks, quest3 has none.
	Task1_1 = entity.QuestTask{
		Base:       entity.Base{ID: "task1_1"},
		QuestID:    Quest1.ID,
		Title:      "Collect crop residue",
		OrderIndex: 0,
		IsRequired: true,
	}

	Task1_2 = entity.QuestTask{
		Base:        entity.Base{ID: "task1_2"},
		QuestID:     Quest1.ID,
		Title:       "Build the compost pit",
		Description: sql.NullString{String: "One metre deep", Valid: true},
		OrderIndex:  1,
		IsRequired:  true,
	}

	Task1_3 = entity.QuestTask{
		Base:       entity.Base{ID: "task1_3"},
		QuestID:    Quest1.ID,
		Title:      "Turn the heap",
		OrderIndex: 2,
		IsRequired: true,
	}

	Task2_1 = entity.QuestTask{
		Base:       entity.Base{ID: "task2_1"},
		QuestID:    Quest2.ID,
		Title:      "Lay the main line",
		OrderIndex: 0,
		IsRequired: true,
	}

	Task2_2 = entity.QuestTask{
		Base:       entity.Base{ID: "task2_2"},
		QuestID:    Quest2.ID,
		Title:      "Share photos with the community",
		OrderIndex: 1,
		IsRequired: false,
	}

	Tasks = []*entity.QuestTask{&Task1_1, &Task1_2, &Task1_3, &Task2_1, &Task2_2}

	// Progress of user1: quest1 started with one task done, quest3 completed.
	UserQuest1 = entity.UserQuest{
		UserID:    User1.UserID,
		QuestID:   Quest1.ID,
		Status:    entity.QuestInProgress,
		Progress:  10,
		StartedAt: sql.NullTime{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	UserQuest2 = entity.UserQuest{
		UserID:      User1.UserID,
		QuestID:     Quest3.ID,
		Status:      entity.QuestCompleted,
		Progress:    100,
		StartedAt:   sql.NullTime{Time: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Valid: true},
		CompletedAt: sql.NullTime{Time: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	UserQuests = []*entity.UserQuest{&UserQuest1, &UserQuest2}

	TaskProgress1 = entity.UserTaskProgress{
		UserID:      User1.UserID,
		TaskID:      Task1_1.ID,
		QuestID:     Quest1.ID,
		IsCompleted: true,
		CompletedAt: sql.NullTime{Time: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	TaskProgresses = []*entity.UserTaskProgress{&TaskProgress1}

	// Badges
	Badge1 = entity.Badge{
		Base:        entity.Base{ID: "badge1"},
		Name:        "Green Guardian",
		Description: "Complete five soil quests",
		IconType:    "shield",
	}

	Badge2 = entity.Badge{
		Base:        entity.Base{ID: "badge2"},
		Name:        "Legend of the Land",
		Description: "Reach the top of the leaderboard",
		IconType:    "crown",
	}

	Badge3 = entity.Badge{
		Base:        entity.Base{ID: "badge3"},
		Name:        "First Sprout",
		Description: "Start your first quest",
		IconType:    "sprout",
	}

	Badges = []*entity.Badge{&Badge1, &Badge2, &Badge3}

	UserBadge1 = entity.UserBadge{
		UserID:   User1.UserID,
		BadgeID:  Badge1.ID,
		EarnedAt: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
	}

	UserBadges = []*entity.UserBadge{&UserBadge1}

	// Rewards
	Reward1 = entity.Reward{
		Base:        entity.Base{ID: "reward1"},
		Title:       "Advanced Organic Inputs Training",
		Description: "Hands-on training session",
		PointsCost:  500,
		Category:    "Education",
	}

	Reward2 = entity.Reward{
		Base:        entity.Base{ID: "reward2"},
		Title:       "Precision Agriculture Workshop",
		Description: "Learn sensor based farming",
		PointsCost:  750,
		Category:    "Education",
	}

	Reward3 = entity.Reward{
		Base:        entity.Base{ID: "reward3"},
		Title:       "Krishi Karman Scheme Bonus",
		Description: "Priority for the state scheme",
		PointsCost:  1000,
		Category:    "Government",
	}

	Rewards = []*entity.Reward{&Reward1, &Reward2, &Reward3}
)

func CreateFixtureDb(ctx context.Context) {
	InsertProfiles(ctx)
	InsertQuests(ctx)
	InsertTasks(ctx)
	InsertUserQuests(ctx)
	InsertTaskProgresses(ctx)
	InsertBadges(ctx)
	InsertUserBadges(ctx)
	InsertRewards(ctx)
}

func insert[T any](ctx context.Context, records []*T) {
	for _, record := range records {
		if err := xcontext.DB(ctx).Create(record).Error; err != nil {
			panic(err)
		}
	}
}

func InsertProfiles(ctx context.Context)       { insert(ctx, Users) }
func InsertQuests(ctx context.Context)         { insert(ctx, Quests) }
func InsertTasks(ctx context.Context)          { insert(ctx, Tasks) }
func InsertUserQuests(ctx context.Context)     { insert(ctx, UserQuests) }
func InsertTaskProgresses(ctx context.Context) { insert(ctx, TaskProgresses) }
func InsertBadges(ctx context.Context)         { insert(ctx, Badges) }
func InsertUserBadges(ctx context.Context)     { insert(ctx, UserBadges) }
func InsertRewards(ctx context.Context)        { insert(ctx, Rewards) }
