package model

type LeaderboardEntry struct {
	UserID              string `json:"user_id"`
	DisplayName         string `json:"display_name"`
	SustainabilityScore int    `json:"sustainability_score"`
	Rank                int    `json:"rank"`
	Avatar              string `json:"avatar"`
	IsCurrentUser       bool   `json:"is_current_user"`
}

type LeaderboardSummary struct {
	Champions     int `json:"champions"`
	ActiveFarmers int `json:"active_farmers"`
	AverageScore  int `json:"average_score"`
}

type GetLeaderBoardRequest struct{}

type GetLeaderBoardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
	Summary     LeaderboardSummary `json:"summary"`
}
