// Package score ranks per-author statistics with two alternative models:
// a weighted min-max composite and a SPACE-style blend. Both are pure
// functions of their inputs; rating collection happens in the caller.
package score

import (
	"strconv"
	"strings"

	"github.com/gitpulse-cli/gitpulse/internal/model"
)

// Input is one author's raw signals as the scorers consume them.
type Input struct {
	Author                string
	Commits               float64
	LinesAdded            float64
	Reviews               float64 // authored comments stand in for code reviews
	GitlabActions         float64
	IssuesAssigned        float64
	MergeRequestsAssigned float64
}

// FromCombined adapts combined statistics rows to scorer inputs.
func FromCombined(rows []model.CombinedStats) []Input {
	inputs := make([]Input, 0, len(rows))
	for _, r := range rows {
		inputs = append(inputs, Input{
			Author:                r.Author,
			Commits:               float64(r.Commits),
			LinesAdded:            float64(r.LinesAdded),
			Reviews:               float64(r.CommentsWritten),
			GitlabActions:         float64(r.GitlabActions),
			IssuesAssigned:        float64(r.IssuesAssigned),
			MergeRequestsAssigned: float64(r.MergeRequestsAssigned),
		})
	}
	return inputs
}

// nonAuthorSentinels are labels that leak into stats tables assembled from
// spreadsheets: header rows, summary rows, serialized NaNs.
var nonAuthorSentinels = map[string]struct{}{
	"metric":              {},
	"value":               {},
	"total lines of code": {},
	"nan":                 {},
}

// filterAuthors drops rows whose author label is a known non-author
// sentinel or purely numeric.
func filterAuthors(rows []Input) []Input {
	kept := make([]Input, 0, len(rows))
	for _, r := range rows {
		label := strings.ToLower(strings.TrimSpace(r.Author))
		if label == "" {
			continue
		}
		if _, bad := nonAuthorSentinels[label]; bad {
			continue
		}
		if _, err := strconv.ParseFloat(label, 64); err == nil {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Authors returns the author labels that survive sentinel filtering, in
// input order. Rating collection iterates exactly this set.
func Authors(rows []Input) []string {
	rows = filterAuthors(rows)
	authors := make([]string, 0, len(rows))
	for _, r := range rows {
		authors = append(authors, r.Author)
	}
	return authors
}

// minMax scales a column to [0, 1]. A degenerate column (max == min) maps
// every value to 0 to avoid dividing by zero.
func minMax(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(values))
	if hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
