package questutil

import (
	"sort"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
)

// Reconcile merges a catalog quest with the progress rows of one user.
//
// When the quest has tasks, progress is derived from the completed task rows
// and the stored progress is ignored. Without tasks, the stored progress is
// used, or 0 if the user never started the quest. Rows of tasks that belong
// to another quest are skipped, so callers may pass every row of the user.
func Reconcile(
	quest entity.Quest,
	tasks []entity.QuestTask,
	userQuest *entity.UserQuest,
	taskProgress []entity.UserTaskProgress,
) model.Quest {
	questTasks := tasksOf(quest.ID, tasks)

	completed := map[string]entity.UserTaskProgress{}
	for _, p := range taskProgress {
		if p.QuestID == quest.ID && p.IsCompleted {
			completed[p.TaskID] = p
		}
	}

	result := model.Quest{
		ID:            quest.ID,
		Title:         quest.Title,
		Description:   quest.Description,
		Points:        quest.Points,
		Category:      quest.Category,
		Difficulty:    quest.Difficulty,
		Status:        string(entity.QuestRecommended),
		Tasks:         make([]model.QuestTask, 0, len(questTasks)),
		TotalTasks:    len(questTasks),
		NextTaskIndex: -1,
	}

	if userQuest != nil && userQuest.QuestID == quest.ID {
		result.Status = string(userQuest.Status)
		result.StartedAt = model.FormatNullTime(userQuest.StartedAt)
		result.CompletedAt = model.FormatNullTime(userQuest.CompletedAt)
	}

	for i, task := range questTasks {
		t := model.ConvertQuestTask(task)
		if p, ok := completed[task.ID]; ok {
			t.IsCompleted = true
			t.CompletedAt = model.FormatNullTime(p.CompletedAt)
			result.CompletedTasks++
		} else if result.NextTaskIndex == -1 {
			result.NextTaskIndex = i
		}

		result.Tasks = append(result.Tasks, t)
	}

	if result.TotalTasks > 0 {
		result.Progress = common.RoundPercent(result.CompletedTasks, result.TotalTasks)
	} else if userQuest != nil && userQuest.QuestID == quest.ID {
		result.Progress = userQuest.Progress
	}

	result.CanComplete = result.Status == string(entity.QuestInProgress) && RequiredTasksDone(result)

	return result
}

// ReconcileAll reconciles every quest of the catalog, keeping catalog order.
func ReconcileAll(
	quests []entity.Quest,
	tasks []entity.QuestTask,
	userQuests []entity.UserQuest,
	taskProgress []entity.UserTaskProgress,
) []model.Quest {
	tasksByQuest := map[string][]entity.QuestTask{}
	for _, t := range tasks {
		tasksByQuest[t.QuestID] = append(tasksByQuest[t.QuestID], t)
	}

	progressByQuest := map[string][]entity.UserTaskProgress{}
	for _, p := range taskProgress {
		progressByQuest[p.QuestID] = append(progressByQuest[p.QuestID], p)
	}

	userQuestByQuest := map[string]*entity.UserQuest{}
	for i := range userQuests {
		userQuestByQuest[userQuests[i].QuestID] = &userQuests[i]
	}

	result := make([]model.Quest, 0, len(quests))
	for _, q := range quests {
		result = append(result, Reconcile(
			q, tasksByQuest[q.ID], userQuestByQuest[q.ID], progressByQuest[q.ID]))
	}

	return result
}

// RequiredTasksDone reports whether every required task of the quest is
// completed. A quest that flags no task as required needs all of them.
func RequiredTasksDone(quest model.Quest) bool {
	hasRequired := false
	for _, t := range quest.Tasks {
		if !t.IsRequired {
			continue
		}

		hasRequired = true
		if !t.IsCompleted {
			return false
		}
	}

	if !hasRequired {
		return quest.CompletedTasks == quest.TotalTasks
	}

	return true
}

func tasksOf(questID string, tasks []entity.QuestTask) []entity.QuestTask {
	result := []entity.QuestTask{}
	for _, t := range tasks {
		if t.QuestID == questID {
			result = append(result, t)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].OrderIndex != result[j].OrderIndex {
			return result[i].OrderIndex < result[j].OrderIndex
		}

		return result[i].ID < result[j].ID
	})

	return result
}
