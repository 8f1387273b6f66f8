package score

import (
	"fmt"
	"math"
	"sort"
)

// Rating is one author's self-reported survey answers, each 1–5.
type Rating struct {
	Productivity int
	Satisfaction int
}

// Validate rejects ratings outside the 1–5 survey scale.
func (r Rating) Validate() error {
	if r.Productivity < 1 || r.Productivity > 5 {
		return fmt.Errorf("productivity rating %d out of range 1-5", r.Productivity)
	}
	if r.Satisfaction < 1 || r.Satisfaction > 5 {
		return fmt.Errorf("satisfaction rating %d out of range 1-5", r.Satisfaction)
	}
	return nil
}

// Normalization selects how the SPACE scorer scales raw signals into the
// 0–100 band.
type Normalization string

const (
	// NormMaxScale divides by the population maximum and clips just below
	// 100 so the maximum itself maps to 99.9.
	NormMaxScale Normalization = "max"
	// NormZScore standardizes to mean 0 / stddev 1, clips to ±3, and maps
	// that band onto 0–100; a constant column maps to the midpoint 50.
	NormZScore Normalization = "zscore"
)

// SPACE composite weights.
const (
	spaceSatisfactionWeight  = 0.2
	spacePerformanceWeight   = 0.3
	spaceActivityWeight      = 0.3
	spaceCollaborationWeight = 0.2
)

// SpaceRanked is one author's row in the SPACE ranking. Sub-scores live on
// a 0–100 band.
type SpaceRanked struct {
	Rank           int     `json:"rank"`
	Author         string  `json:"author"`
	TaskCompletion float64 `json:"task_completion"`
	Satisfaction   float64 `json:"s_score"`
	Performance    float64 `json:"p_score"`
	Activity       float64 `json:"a_score"`
	Collaboration  float64 `json:"c_score"`
	FinalScore     float64 `json:"final_score"`
	Inactive       bool    `json:"inactive"`
}

// SpaceResult is the SPACE ranking plus population-level diagnostics.
type SpaceResult struct {
	Rows []SpaceRanked
	// LowConfidence is set when every author's final score is identical,
	// which makes the ordering meaningless.
	LowConfidence bool
}

// SpaceRank combines interface activity, task completion, commit activity,
// review activity, and the self-reported ratings into the four SPACE
// sub-scores and a weighted composite. Authors missing from ratings are an
// error: collection is the caller's job and must be complete.
func SpaceRank(rows []Input, ratings map[string]Rating, norm Normalization) (SpaceResult, error) {
	rows = filterAuthors(rows)
	if len(rows) == 0 {
		return SpaceResult{}, nil
	}

	normalize := maxScale
	if norm == NormZScore {
		normalize = zScale
	}

	n := len(rows)
	actions := make([]float64, n)
	task := make([]float64, n)
	commits := make([]float64, n)
	reviews := make([]float64, n)
	perfRating := make([]float64, n)
	satRating := make([]float64, n)

	for i, r := range rows {
		rating, ok := ratings[r.Author]
		if !ok {
			return SpaceResult{}, fmt.Errorf("no rating collected for %q", r.Author)
		}
		if err := rating.Validate(); err != nil {
			return SpaceResult{}, fmt.Errorf("%s: %w", r.Author, err)
		}
		actions[i] = r.GitlabActions
		task[i] = r.IssuesAssigned + r.MergeRequestsAssigned
		commits[i] = r.Commits
		reviews[i] = r.Reviews
		perfRating[i] = float64(rating.Productivity) * 20
		satRating[i] = float64(rating.Satisfaction) * 20
	}

	normActions := normalize(actions)
	normTask := normalize(task)
	normPerf := normalize(perfRating)
	normCommits := normalize(commits)
	normReviews := normalize(reviews)

	ranked := make([]SpaceRanked, n)
	for i, r := range rows {
		p := 0.4*normActions[i] + 0.4*normTask[i] + 0.2*normPerf[i]
		a := normCommits[i]
		c := normReviews[i]
		s := satRating[i]
		ranked[i] = SpaceRanked{
			Author:         r.Author,
			TaskCompletion: task[i],
			Satisfaction:   s,
			Performance:    p,
			Activity:       a,
			Collaboration:  c,
			FinalScore: spaceSatisfactionWeight*s +
				spacePerformanceWeight*p +
				spaceActivityWeight*a +
				spaceCollaborationWeight*c,
			Inactive: commits[i]+task[i] == 0,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	assignMinRanks(ranked)

	lowConfidence := true
	for _, r := range ranked[1:] {
		if r.FinalScore != ranked[0].FinalScore {
			lowConfidence = false
			break
		}
	}
	if n == 1 {
		lowConfidence = false
	}

	return SpaceResult{Rows: ranked, LowConfidence: lowConfidence}, nil
}

// assignMinRanks applies the "min" tie convention over descending-sorted
// rows: equal scores share the 1-based position of the first such row.
func assignMinRanks(rows []SpaceRanked) {
	for i := range rows {
		if i > 0 && rows[i].FinalScore == rows[i-1].FinalScore {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
}

// maxScale maps values onto 0–100 by dividing by the population maximum,
// clipped to 99.9 so the maximum never reads as a perfect score. A
// non-positive maximum maps everything to 0.
func maxScale(values []float64) []float64 {
	out := make([]float64, len(values))
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = math.Min(v/max*100, 99.9)
	}
	return out
}

// zScale standardizes values and maps the ±3-sigma band onto 0–100. A
// zero-variance population maps every value to the midpoint 50.
func zScale(values []float64) []float64 {
	out := make([]float64, len(values))
	n := float64(len(values))
	if n == 0 {
		return out
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / n)

	if std == 0 {
		for i := range out {
			out[i] = 50
		}
		return out
	}

	for i, v := range values {
		z := (v - mean) / std
		z = math.Max(-3, math.Min(3, z))
		out[i] = (z + 3) / 6 * 100
	}
	return out
}
