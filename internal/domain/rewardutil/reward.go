package rewardutil

import (
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"golang.org/x/exp/slices"
)

// CategoryAll selects rewards of every category.
const CategoryAll = "All"

func IsAffordable(points, cost int) bool {
	return points >= cost
}

// Project converts rewards and marks those the user can pay for with points.
func Project(points int, rewards []entity.Reward) []model.Reward {
	result := make([]model.Reward, 0, len(rewards))
	for _, r := range rewards {
		reward := model.ConvertReward(r)
		reward.IsAffordable = IsAffordable(points, r.PointsCost)
		result = append(result, reward)
	}

	return result
}

// NextMilestone is the cheapest reward the user cannot afford yet, nil if
// every reward is affordable.
func NextMilestone(points int, rewards []model.Reward) *model.Milestone {
	var next *model.Reward
	for i := range rewards {
		if IsAffordable(points, rewards[i].PointsCost) {
			continue
		}

		if next == nil || rewards[i].PointsCost < next.PointsCost {
			next = &rewards[i]
		}
	}

	if next == nil {
		return nil
	}

	return &model.Milestone{Reward: *next, PointsNeeded: next.PointsCost - points}
}

// FilterByCategory keeps everything for an empty category or CategoryAll.
func FilterByCategory(rewards []model.Reward, category string) []model.Reward {
	if category == "" || category == CategoryAll {
		return rewards
	}

	result := []model.Reward{}
	for _, r := range rewards {
		if r.Category == category {
			result = append(result, r)
		}
	}

	return result
}

// Categories lists the distinct categories in order of first appearance,
// starting with CategoryAll.
func Categories(rewards []model.Reward) []string {
	result := []string{CategoryAll}
	for _, r := range rewards {
		if !slices.Contains(result, r.Category) {
			result = append(result, r.Category)
		}
	}

	return result
}
