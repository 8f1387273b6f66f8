package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinMaxDegenerateColumn(t *testing.T) {
	got := minMax([]float64{5, 5, 5})
	assert.Equal(t, []float64{0, 0, 0}, got)
}

func TestMinMaxBounds(t *testing.T) {
	got := minMax([]float64{2, 6, 10})
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got[0])
	assert.InDelta(t, 0.5, got[1], 1e-9)
	assert.Equal(t, 1.0, got[2])
}

func TestMinMaxRankWeights(t *testing.T) {
	rows := []Input{
		{Author: "alice", Commits: 10, LinesAdded: 100, Reviews: 5},
		{Author: "bob", Commits: 0, LinesAdded: 0, Reviews: 0},
	}

	ranked := MinMaxRank(rows)
	require.Len(t, ranked, 2)

	// alice maxes every column: 0.4 + 0.4 + 0.2.
	assert.Equal(t, "alice", ranked[0].Author)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.InDelta(t, 1.0, ranked[0].FinalScore, 1e-9)

	assert.Equal(t, "bob", ranked[1].Author)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.InDelta(t, 0.0, ranked[1].FinalScore, 1e-9)
}

func TestMinMaxRankDropsNonAuthors(t *testing.T) {
	rows := []Input{
		{Author: "alice", Commits: 1},
		{Author: "Metric"},
		{Author: "Total lines of code"},
		{Author: "nan"},
		{Author: "42"},   // purely numeric label
		{Author: "17.5"}, // numeric with decimals
		{Author: "  "},
	}

	ranked := MinMaxRank(rows)
	require.Len(t, ranked, 1)
	assert.Equal(t, "alice", ranked[0].Author)
}

func TestMinMaxRankTiesKeepSequentialRanks(t *testing.T) {
	rows := []Input{
		{Author: "alice", Commits: 5},
		{Author: "bob", Commits: 5},
		{Author: "carol", Commits: 5},
	}

	ranked := MinMaxRank(rows)
	require.Len(t, ranked, 3)
	// No tie collapsing in this variant: ranks stay 1, 2, 3.
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestMinMaxRankEmpty(t *testing.T) {
	assert.Nil(t, MinMaxRank(nil))
	assert.Nil(t, MinMaxRank([]Input{{Author: "nan"}}))
}
