package model

type QuestTask struct {
	ID          string `json:"id"`
	QuestID     string `json:"quest_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
	IsRequired  bool   `json:"is_required"`
	IsCompleted bool   `json:"is_completed"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Quest is a catalog quest merged with the progress of one user.
type Quest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Points      int         `json:"points"`
	Category    string      `json:"category"`
	Difficulty  string      `json:"difficulty"`
	Status      string      `json:"status"`
	Progress    int         `json:"progress"`
	StartedAt   string      `json:"started_at,omitempty"`
	CompletedAt string      `json:"completed_at,omitempty"`
	Tasks       []QuestTask `json:"tasks"`

	CompletedTasks int  `json:"completed_tasks"`
	TotalTasks     int  `json:"total_tasks"`
	NextTaskIndex  int  `json:"next_task_index"`
	CanComplete    bool `json:"can_complete"`
}

type UserQuest struct {
	UserID      string `json:"user_id"`
	QuestID     string `json:"quest_id"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	StartedAt   string `json:"started_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type UserTaskProgress struct {
	UserID      string `json:"user_id"`
	TaskID      string `json:"task_id"`
	QuestID     string `json:"quest_id"`
	IsCompleted bool   `json:"is_completed"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type GetListQuestRequest struct {
	Status string `json:"status"`
	Q      string `json:"q"`
}

type GetListQuestResponse struct {
	Quests []Quest        `json:"quests"`
	Counts map[string]int `json:"counts"`
}

type GetQuestRequest struct {
	ID string `json:"id"`
}

type GetQuestResponse struct {
	Quest Quest `json:"quest"`
}

type GetActiveQuestsRequest struct{}

type GetActiveQuestsResponse struct {
	Quests []Quest `json:"quests"`
}

type StartQuestRequest struct {
	QuestID string `json:"quest_id"`
}

type StartQuestResponse struct {
	UserQuest UserQuest `json:"user_quest"`
}

type ToggleTaskRequest struct {
	QuestID     string `json:"quest_id"`
	TaskID      string `json:"task_id"`
	IsCompleted bool   `json:"is_completed"`
}

type ToggleTaskResponse struct {
	TaskProgress UserTaskProgress `json:"task_progress"`
}

type CompleteQuestRequest struct {
	QuestID string `json:"quest_id"`
}

type CompleteQuestResponse struct {
	UserQuest UserQuest `json:"user_quest"`
}
