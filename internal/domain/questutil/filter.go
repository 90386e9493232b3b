package questutil

import (
	"strings"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/pkg/enum"
)

// StatusAll selects quests regardless of their status.
const StatusAll = "all"

// FilterByStatus keeps quests whose status is status. An empty status or
// StatusAll keeps everything.
func FilterByStatus(quests []model.Quest, status string) []model.Quest {
	if status == "" || status == StatusAll {
		return quests
	}

	result := []model.Quest{}
	for _, q := range quests {
		if q.Status == status {
			result = append(result, q)
		}
	}

	return result
}

// Search keeps quests whose title or description contains query, ignoring
// case. A blank query keeps everything.
func Search(quests []model.Quest, query string) []model.Quest {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return quests
	}

	result := []model.Quest{}
	for _, q := range quests {
		if strings.Contains(strings.ToLower(q.Title), query) ||
			strings.Contains(strings.ToLower(q.Description), query) {
			result = append(result, q)
		}
	}

	return result
}

// CountByStatus returns the number of quests per status, with every status
// present, plus the total under StatusAll.
func CountByStatus(quests []model.Quest) map[string]int {
	counts := map[string]int{StatusAll: len(quests)}
	for _, s := range enum.Values[entity.QuestStatus]() {
		counts[string(s)] = 0
	}

	for _, q := range quests {
		counts[q.Status]++
	}

	return counts
}

// Active returns the quests the user is working on.
func Active(quests []model.Quest) []model.Quest {
	return FilterByStatus(quests, string(entity.QuestInProgress))
}

// ValidStatusFilter reports whether status can be passed to FilterByStatus.
func ValidStatusFilter(status string) bool {
	if status == "" || status == StatusAll {
		return true
	}

	_, err := enum.ToEnum[entity.QuestStatus](status)
	return err == nil
}
