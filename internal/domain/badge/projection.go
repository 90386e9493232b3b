package badge

import (
	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterEarned    Filter = "earned"
	FilterAvailable Filter = "available"
)

// Project marks a badge as earned iff the user has a row for it. The order of
// badges is kept.
func Project(badges []entity.Badge, userBadges []entity.UserBadge) []model.Badge {
	earned := map[string]entity.UserBadge{}
	for _, ub := range userBadges {
		earned[ub.BadgeID] = ub
	}

	result := make([]model.Badge, 0, len(badges))
	for _, b := range badges {
		badge := model.Badge{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			IconType:    b.IconType,
			Rarity:      string(RarityOf(b.Name)),
		}

		if ub, ok := earned[b.ID]; ok {
			badge.IsEarned = true
			badge.EarnedAt = ub.EarnedAt.Format(model.DefaultTimeLayout)
		}

		result = append(result, badge)
	}

	return result
}

// ApplyFilter returns every badge for an unknown filter.
func ApplyFilter(badges []model.Badge, filter Filter) []model.Badge {
	if filter != FilterEarned && filter != FilterAvailable {
		return badges
	}

	result := []model.Badge{}
	for _, b := range badges {
		if b.IsEarned == (filter == FilterEarned) {
			result = append(result, b)
		}
	}

	return result
}

func Stats(badges []model.Badge) model.BadgeStats {
	stats := model.BadgeStats{Total: len(badges)}
	for _, b := range badges {
		if b.IsEarned {
			stats.Earned++
		}
	}

	stats.CompletionRate = common.RoundPercent(stats.Earned, stats.Total)
	return stats
}
