package statistic

import (
	"testing"

	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func profiles() []entity.Profile {
	return []entity.Profile{
		{UserID: "u1", DisplayName: "Rajesh Kumar", SustainabilityScore: 2850},
		{UserID: "u2", DisplayName: "Priya Sharma", SustainabilityScore: 2340},
		{UserID: "u3", DisplayName: "Amit Singh Rathore", SustainabilityScore: 2120},
		{UserID: "u4", DisplayName: "sunita", SustainabilityScore: 1250},
	}
}

func TestComputeRanking(t *testing.T) {
	entries := ComputeRanking(profiles(), "u3")
	require.Len(t, entries, 4)

	flagged := 0
	for i, e := range entries {
		require.Equal(t, i+1, e.Rank)
		if e.IsCurrentUser {
			flagged++
			require.Equal(t, "u3", e.UserID)
		}
	}
	require.Equal(t, 1, flagged)

	require.Equal(t, []int{2850, 2340, 2120, 1250}, []int{
		entries[0].SustainabilityScore,
		entries[1].SustainabilityScore,
		entries[2].SustainabilityScore,
		entries[3].SustainabilityScore,
	})

	current := FindCurrentUser(entries)
	require.NotNil(t, current)
	require.Equal(t, 3, current.Rank)
}

func TestComputeRanking_NoCurrentUser(t *testing.T) {
	entries := ComputeRanking(profiles(), "nobody")
	for _, e := range entries {
		require.False(t, e.IsCurrentUser)
	}
	require.Nil(t, FindCurrentUser(entries))

	entries = ComputeRanking(profiles(), "")
	require.Nil(t, FindCurrentUser(entries))

	require.Empty(t, ComputeRanking(nil, "u1"))
}

func TestComputeRanking_Ties(t *testing.T) {
	entries := ComputeRanking([]entity.Profile{
		{UserID: "a", SustainabilityScore: 100},
		{UserID: "b", SustainabilityScore: 100},
		{UserID: "c", SustainabilityScore: 50},
	}, "b")

	require.Equal(t, 1, entries[0].Rank)
	require.Equal(t, 2, entries[1].Rank)
	require.Equal(t, 3, entries[2].Rank)
	require.True(t, entries[1].IsCurrentUser)
}

func TestAvatar(t *testing.T) {
	tests := map[string]string{
		"Rajesh Kumar":       "RK",
		"Amit Singh Rathore": "AS",
		"sunita":             "S",
		"  lakshmi   devi ":  "LD",
		"":                   "",
		"élodie martin":      "ÉM",
	}

	for name, want := range tests {
		require.Equal(t, want, Avatar(name), name)
	}
}

func TestSummarize(t *testing.T) {
	entries := ComputeRanking(profiles(), "")
	summary := Summarize(entries, 2000)
	require.Equal(t, 3, summary.Champions)
	require.Equal(t, 4, summary.ActiveFarmers)
	require.Equal(t, 2140, summary.AverageScore)

	empty := Summarize(nil, 2000)
	require.Zero(t, empty.Champions)
	require.Zero(t, empty.ActiveFarmers)
	require.Zero(t, empty.AverageScore)

	// Exactly the threshold is not a champion.
	summary = Summarize(ComputeRanking([]entity.Profile{{UserID: "x", SustainabilityScore: 2000}}, ""), 2000)
	require.Zero(t, summary.Champions)
}
