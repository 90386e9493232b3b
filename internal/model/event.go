package model

// QuestCompletedEvent is published on the completed topic once per quest
// completion.
type QuestCompletedEvent struct {
	UserID      string `json:"user_id"`
	QuestID     string `json:"quest_id"`
	Points      int    `json:"points"`
	CompletedAt string `json:"completed_at"`
}
