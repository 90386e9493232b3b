package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		part, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 2, 50},
		{1, 8, 13},
		{5, 0, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, RoundPercent(tt.part, tt.total), "%d/%d", tt.part, tt.total)
	}
}

func TestRoundDiv(t *testing.T) {
	require.Equal(t, 2218, RoundDiv(2850+2340+2120+1250+2531, 5))
	require.Equal(t, 3, RoundDiv(5, 2))
	require.Equal(t, 0, RoundDiv(0, 0))
}
