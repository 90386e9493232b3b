package repository

import (
	"context"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	GetLeaderBoard(ctx context.Context) ([]entity.Profile, error)
	IncreaseScore(ctx context.Context, userID string, points int) error
}

type profileRepository struct{}

func NewProfileRepository() *profileRepository {
	return &profileRepository{}
}

// Upsert never touches the score of an existing profile.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
		}).Create(profile).Error
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	result := entity.Profile{}
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetLeaderBoard returns every profile from the highest score to the lowest.
// Equal scores are ordered by user id.
func (r *profileRepository) GetLeaderBoard(ctx context.Context) ([]entity.Profile, error) {
	result := []entity.Profile{}
	err := xcontext.DB(ctx).
		Order("sustainability_score DESC, user_id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IncreaseScore creates the profile when the user has none yet.
func (r *profileRepository) IncreaseScore(ctx context.Context, userID string, points int) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"sustainability_score": gorm.Expr("sustainability_score + ?", points),
			}),
		}).Create(&entity.Profile{UserID: userID, SustainabilityScore: points}).Error
}
