package model

type Reward struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	PointsCost   int    `json:"points_cost"`
	Category     string `json:"category"`
	IsAffordable bool   `json:"is_affordable"`
}

type Milestone struct {
	Reward       Reward `json:"reward"`
	PointsNeeded int    `json:"points_needed"`
}

type GetListRewardRequest struct {
	Category string `json:"category"`
}

type GetListRewardResponse struct {
	Rewards    []Reward `json:"rewards"`
	Categories []string `json:"categories"`
}

type GetMyRewardsRequest struct {
	Category string `json:"category"`
}

type GetMyRewardsResponse struct {
	Points        int        `json:"points"`
	Rewards       []Reward   `json:"rewards"`
	Categories    []string   `json:"categories"`
	NextMilestone *Milestone `json:"next_milestone,omitempty"`
}
