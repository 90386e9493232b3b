package model

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconType    string `json:"icon_type"`
	Rarity      string `json:"rarity"`
	IsEarned    bool   `json:"is_earned"`
	EarnedAt    string `json:"earned_at,omitempty"`
}

type BadgeStats struct {
	Earned         int `json:"earned"`
	Total          int `json:"total"`
	CompletionRate int `json:"completion_rate"`
}

type GetListBadgeRequest struct{}

type GetListBadgeResponse struct {
	Badges []Badge `json:"badges"`
}

type GetMyBadgesRequest struct {
	Filter string `json:"filter"`
}

type GetMyBadgesResponse struct {
	Badges []Badge    `json:"badges"`
	Stats  BadgeStats `json:"stats"`
}
