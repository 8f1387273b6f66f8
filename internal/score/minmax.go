package score

import "sort"

// Weighted min-max composite weights.
const (
	minMaxCommitWeight = 0.4
	minMaxLinesWeight  = 0.4
	minMaxReviewWeight = 0.2
)

// MinMaxRanked is one author's row in the weighted min-max ranking.
type MinMaxRanked struct {
	Rank        int     `json:"rank"`
	Author      string  `json:"author"`
	NormCommits float64 `json:"norm_commits"`
	NormLines   float64 `json:"norm_lines"`
	NormReviews float64 `json:"norm_reviews"`
	FinalScore  float64 `json:"final_score"`
}

// MinMaxRank scores authors by min-max-normalized commits, added lines, and
// reviews at weights 0.4/0.4/0.2, ranked descending. Ties keep distinct
// sequential ranks; only sort stability orders equal scores.
func MinMaxRank(rows []Input) []MinMaxRanked {
	rows = filterAuthors(rows)
	if len(rows) == 0 {
		return nil
	}

	commits := make([]float64, len(rows))
	lines := make([]float64, len(rows))
	reviews := make([]float64, len(rows))
	for i, r := range rows {
		commits[i] = r.Commits
		lines[i] = r.LinesAdded
		reviews[i] = r.Reviews
	}
	commits = minMax(commits)
	lines = minMax(lines)
	reviews = minMax(reviews)

	ranked := make([]MinMaxRanked, len(rows))
	for i, r := range rows {
		ranked[i] = MinMaxRanked{
			Author:      r.Author,
			NormCommits: commits[i],
			NormLines:   lines[i],
			NormReviews: reviews[i],
			FinalScore: minMaxCommitWeight*commits[i] +
				minMaxLinesWeight*lines[i] +
				minMaxReviewWeight*reviews[i],
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
