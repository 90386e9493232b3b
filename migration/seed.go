package migration

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type seedTask struct {
	title       string
	description string
	required    bool
}

type seedQuest struct {
	title       string
	description string
	points      int
	category    string
	difficulty  string
	tasks       []seedTask
}

var seedQuests = []seedQuest{
	{
		title:       "Compost Champion",
		description: "Turn crop residue and kitchen waste into rich organic compost.",
		points:      150,
		category:    "Composting",
		difficulty:  "Easy",
		tasks: []seedTask{
			{"Collect crop residue", "Gather dry leaves, stalks and husks.", true},
			{"Build the compost pit", "Dig a pit one metre deep in a shaded spot.", true},
			{"Turn the heap", "Mix the heap every two weeks to aerate it.", true},
		},
	},
	{
		title:       "Drip Irrigation Setup",
		description: "Install drip lines to save water on one plot.",
		points:      300,
		category:    "Watering",
		difficulty:  "Medium",
		tasks: []seedTask{
			{"Map the plot", "Mark the rows which need water.", true},
			{"Lay the main line", "Connect the main line to the water source.", true},
			{"Fit the emitters", "Place one emitter next to each plant.", true},
			{"Share photos", "Post photos of the setup for other farmers.", false},
		},
	},
	{
		title:       "Native Seed Planting",
		description: "Plant a row of native, climate resilient seeds.",
		points:      200,
		category:    "Planting",
		difficulty:  "Easy",
		tasks: []seedTask{
			{"Source native seeds", "Get seeds from the local seed bank.", true},
			{"Prepare the bed", "Loosen the soil and add compost.", true},
		},
	},
	{
		title:       "Pollinator Garden",
		description: "Grow flowering borders which attract bees and butterflies.",
		points:      250,
		category:    "Gardening",
		difficulty:  "Medium",
		tasks: []seedTask{
			{"Choose flowering plants", "Pick plants which bloom in different seasons.", true},
			{"Plant the border", "Plant along the edge of one field.", true},
			{"Skip pesticides", "Avoid spraying the border for a month.", true},
		},
	},
	{
		title:       "Soil Health Card",
		description: "Apply for a government soil health card for your farm.",
		points:      100,
		category:    "Soil",
		difficulty:  "Easy",
	},
	{
		title:       "Zero Waste Harvest",
		description: "Finish a season without burning any stubble.",
		points:      500,
		category:    "Soil",
		difficulty:  "Hard",
		tasks: []seedTask{
			{"Plan residue management", "Decide how each field's residue will be used.", true},
			{"Mulch the stubble", "Use the stubble as mulch for the next crop.", true},
			{"Record the season", "Write down the yield and the residue used.", true},
		},
	},
}

var seedBadges = []entity.Badge{
	{Name: "Legend of the Land", Description: "Reach the top of the leaderboard.", IconType: "crown"},
	{Name: "Earth Champion", Description: "Complete every quest in the catalog.", IconType: "trophy"},
	{Name: "Climate Fighter", Description: "Complete three hard quests.", IconType: "zap"},
	{Name: "Future Farmer", Description: "Complete a quest in every category.", IconType: "graduation-cap"},
	{Name: "Sustainability Star", Description: "Earn 2000 sustainability points.", IconType: "star"},
	{Name: "Green Guardian", Description: "Complete five soil quests.", IconType: "shield"},
	{Name: "Water Wizard", Description: "Complete every watering quest.", IconType: "droplet"},
	{Name: "Compost King", Description: "Complete every composting quest.", IconType: "recycle"},
	{Name: "Bio Defender", Description: "Grow a pollinator garden.", IconType: "bug"},
	{Name: "First Sprout", Description: "Complete your first quest.", IconType: "leaf"},
}

var seedRewards = []entity.Reward{
	{
		Title:       "Advanced Organic Inputs Training",
		Description: "A hands-on session on preparing organic inputs.",
		PointsCost:  500,
		Category:    "Education",
	},
	{
		Title:       "Krishi Karman Scheme Bonus",
		Description: "Priority processing for the state agriculture scheme.",
		PointsCost:  1000,
		Category:    "Government",
	},
	{
		Title:       "Progressive Farmer Spotlight",
		Description: "Your farm featured in the regional newsletter.",
		PointsCost:  2500,
		Category:    "Recognition",
	},
	{
		Title:       "Precision Agriculture Workshop",
		Description: "Learn sensor based irrigation and fertilization.",
		PointsCost:  750,
		Category:    "Education",
	},
	{
		Title:       "Sustainable Seeds Package",
		Description: "A season's worth of certified native seeds.",
		PointsCost:  1500,
		Category:    "Resources",
	},
	{
		Title:       "Agricultural Expert Consultation",
		Description: "One hour with an agronomist on your own fields.",
		PointsCost:  2000,
		Category:    "Consultation",
	},
	{
		Title:       "Water Management Certificate",
		Description: "Certification course on water conservation.",
		PointsCost:  1200,
		Category:    "Certification",
	},
	{
		Title:       "Soil Health Testing Kit",
		Description: "A kit to test pH and nutrients at home.",
		PointsCost:  800,
		Category:    "Resources",
	},
}

type Seeder struct {
	questRepo     repository.QuestRepository
	questTaskRepo repository.QuestTaskRepository
	badgeRepo     repository.BadgeRepository
	rewardRepo    repository.RewardRepository
}

func NewSeeder(
	questRepo repository.QuestRepository,
	questTaskRepo repository.QuestTaskRepository,
	badgeRepo repository.BadgeRepository,
	rewardRepo repository.RewardRepository,
) *Seeder {
	return &Seeder{
		questRepo:     questRepo,
		questTaskRepo: questTaskRepo,
		badgeRepo:     badgeRepo,
		rewardRepo:    rewardRepo,
	}
}

// Seed inserts the demo catalog. Rows which already exist, matched by title
// or name, are skipped, so it can run on every deploy.
func (s *Seeder) Seed(ctx context.Context) error {
	for _, q := range seedQuests {
		if err := s.seedQuest(ctx, q); err != nil {
			return err
		}
	}

	for _, b := range seedBadges {
		_, err := s.badgeRepo.GetByName(ctx, b.Name)
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		b.ID = uuid.NewString()
		if err := s.badgeRepo.Create(ctx, &b); err != nil {
			return err
		}
	}

	for _, r := range seedRewards {
		_, err := s.rewardRepo.GetByTitle(ctx, r.Title)
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		r.ID = uuid.NewString()
		if err := s.rewardRepo.Create(ctx, &r); err != nil {
			return err
		}
	}

	return nil
}

func (s *Seeder) seedQuest(ctx context.Context, q seedQuest) error {
	_, err := s.questRepo.GetByTitle(ctx, q.title)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	quest := &entity.Quest{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       q.title,
		Description: q.description,
		Points:      q.points,
		Category:    q.category,
		Difficulty:  q.difficulty,
	}

	if err := s.questRepo.Create(ctx, quest); err != nil {
		return err
	}

	for i, t := range q.tasks {
		err := s.questTaskRepo.Create(ctx, &entity.QuestTask{
			Base:        entity.Base{ID: uuid.NewString()},
			QuestID:     quest.ID,
			Title:       t.title,
			Description: sql.NullString{String: t.description, Valid: t.description != ""},
			OrderIndex:  i,
			IsRequired:  t.required,
		})
		if err != nil {
			return err
		}
	}

	xcontext.Logger(ctx).Infof("Seeded quest %s with %d tasks", quest.Title, len(q.tasks))
	return nil
}
