package statistic

import (
	"strings"
	"unicode/utf8"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
)

// ComputeRanking assigns ranks to profiles, which must already be sorted from
// the highest score to the lowest. The rank is the 1-based position, so equal
// scores keep the order of the input.
func ComputeRanking(profiles []entity.Profile, currentUserID string) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, model.LeaderboardEntry{
			UserID:              p.UserID,
			DisplayName:         p.DisplayName,
			SustainabilityScore: p.SustainabilityScore,
			Rank:                i + 1,
			Avatar:              Avatar(p.DisplayName),
			IsCurrentUser:       currentUserID != "" && p.UserID == currentUserID,
		})
	}

	return entries
}

// FindCurrentUser returns nil if no entry belongs to the current user.
func FindCurrentUser(entries []model.LeaderboardEntry) *model.LeaderboardEntry {
	for i := range entries {
		if entries[i].IsCurrentUser {
			entry := entries[i]
			return &entry
		}
	}

	return nil
}

// Avatar returns the uppercased initials of the first two words of name.
func Avatar(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}

	initials := ""
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		initials += string(r)
	}

	return strings.ToUpper(initials)
}

// Summarize counts the champions, whose score is above championScore, and
// averages the scores of all entries.
func Summarize(entries []model.LeaderboardEntry, championScore int) model.LeaderboardSummary {
	summary := model.LeaderboardSummary{ActiveFarmers: len(entries)}

	total := 0
	for _, e := range entries {
		total += e.SustainabilityScore
		if e.SustainabilityScore > championScore {
			summary.Champions++
		}
	}

	summary.AverageScore = common.RoundDiv(total, len(entries))
	return summary
}
