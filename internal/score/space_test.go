package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingValidate(t *testing.T) {
	assert.NoError(t, Rating{Productivity: 1, Satisfaction: 5}.Validate())
	assert.Error(t, Rating{Productivity: 0, Satisfaction: 3}.Validate())
	assert.Error(t, Rating{Productivity: 3, Satisfaction: 6}.Validate())
}

func TestMaxScaleClipsMaximum(t *testing.T) {
	got := maxScale([]float64{10, 20, 40})
	require.Len(t, got, 3)
	assert.InDelta(t, 25, got[0], 1e-9)
	assert.InDelta(t, 50, got[1], 1e-9)
	// The population maximum maps to 99.9, never 100.
	assert.InDelta(t, 99.9, got[2], 1e-9)
}

func TestMaxScaleZeroPopulation(t *testing.T) {
	got := maxScale([]float64{0, 0, 0})
	assert.Equal(t, []float64{0, 0, 0}, got)
}

func TestZScaleConstantColumn(t *testing.T) {
	got := zScale([]float64{7, 7, 7})
	assert.Equal(t, []float64{50, 50, 50}, got)
}

func TestZScaleCentersOnMean(t *testing.T) {
	got := zScale([]float64{1, 2, 3})
	require.Len(t, got, 3)
	assert.InDelta(t, 50, got[1], 1e-9)
	assert.Less(t, got[0], got[1])
	assert.Less(t, got[1], got[2])
}

func spaceFixtures() ([]Input, map[string]Rating) {
	rows := []Input{
		{Author: "alice", Commits: 10, Reviews: 4, GitlabActions: 8, IssuesAssigned: 3, MergeRequestsAssigned: 2},
		{Author: "bob", Commits: 5, Reviews: 2, GitlabActions: 4, IssuesAssigned: 1, MergeRequestsAssigned: 1},
		{Author: "carol"},
	}
	ratings := map[string]Rating{
		"alice": {Productivity: 4, Satisfaction: 5},
		"bob":   {Productivity: 3, Satisfaction: 3},
		"carol": {Productivity: 2, Satisfaction: 2},
	}
	return rows, ratings
}

func TestSpaceRankOrdering(t *testing.T) {
	rows, ratings := spaceFixtures()

	result, err := SpaceRank(rows, ratings, NormMaxScale)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, "alice", result.Rows[0].Author)
	assert.Equal(t, 1, result.Rows[0].Rank)
	assert.False(t, result.LowConfidence)

	// Task completion is raw issues + merge requests.
	assert.Equal(t, 5.0, result.Rows[0].TaskCompletion)
	// Satisfaction is the raw scaled rating, not re-normalized.
	assert.Equal(t, 100.0, result.Rows[0].Satisfaction)
}

func TestSpaceRankInactiveFlag(t *testing.T) {
	rows, ratings := spaceFixtures()

	result, err := SpaceRank(rows, ratings, NormMaxScale)
	require.NoError(t, err)

	for _, r := range result.Rows {
		if r.Author == "carol" {
			assert.True(t, r.Inactive, "no commits and no tasks marks the row inactive")
		} else {
			assert.False(t, r.Inactive, "%s has activity", r.Author)
		}
	}
}

func TestSpaceRankMissingRating(t *testing.T) {
	rows, ratings := spaceFixtures()
	delete(ratings, "bob")

	_, err := SpaceRank(rows, ratings, NormMaxScale)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bob")
}

func TestSpaceRankInvalidRating(t *testing.T) {
	rows, ratings := spaceFixtures()
	ratings["carol"] = Rating{Productivity: 9, Satisfaction: 3}

	_, err := SpaceRank(rows, ratings, NormMaxScale)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carol")
}

func TestSpaceRankMinTieConvention(t *testing.T) {
	// Identical signals and ratings force a tie at the top.
	rows := []Input{
		{Author: "alice", Commits: 9, Reviews: 3, GitlabActions: 6, IssuesAssigned: 2},
		{Author: "bob", Commits: 9, Reviews: 3, GitlabActions: 6, IssuesAssigned: 2},
		{Author: "carol", Commits: 1},
	}
	ratings := map[string]Rating{
		"alice": {Productivity: 4, Satisfaction: 4},
		"bob":   {Productivity: 4, Satisfaction: 4},
		"carol": {Productivity: 2, Satisfaction: 2},
	}

	result, err := SpaceRank(rows, ratings, NormMaxScale)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	assert.Equal(t, 1, result.Rows[0].Rank)
	assert.Equal(t, 1, result.Rows[1].Rank)
	assert.Equal(t, 3, result.Rows[2].Rank, "rank after a two-way tie skips to 3")
}

func TestSpaceRankLowConfidence(t *testing.T) {
	rows := []Input{
		{Author: "alice", Commits: 3},
		{Author: "bob", Commits: 3},
	}
	ratings := map[string]Rating{
		"alice": {Productivity: 3, Satisfaction: 3},
		"bob":   {Productivity: 3, Satisfaction: 3},
	}

	result, err := SpaceRank(rows, ratings, NormMaxScale)
	require.NoError(t, err)
	assert.True(t, result.LowConfidence, "identical finals across the population")
}

func TestSpaceRankSingleAuthorNotLowConfidence(t *testing.T) {
	rows := []Input{{Author: "alice", Commits: 3}}
	ratings := map[string]Rating{"alice": {Productivity: 3, Satisfaction: 3}}

	result, err := SpaceRank(rows, ratings, NormMaxScale)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.False(t, result.LowConfidence)
}

func TestSpaceRankEmptyAfterFiltering(t *testing.T) {
	result, err := SpaceRank([]Input{{Author: "Metric"}}, nil, NormMaxScale)
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}
