// Package report writes the pipeline's file outputs: CSV tables for the
// normalized records and XLSX workbooks for per-author statistics and
// rankings.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/score"
)

// writeCSV writes a header row plus data rows to path, overwriting any
// existing file.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteCommentsCSV writes the flattened comment rows.
func WriteCommentsCSV(path string, rows []model.CommentRow) error {
	header := []string{"type", "title", "created", "author_username", "comment"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Source, r.Title, r.Created, r.AuthorUsername, r.Comment})
	}
	return writeCSV(path, header, records)
}

// WriteIssuesCSV writes the normalized issue rows. Resolved username
// columns sit directly after the id column, in the order the normalizer
// produced them.
func WriteIssuesCSV(path string, rows []model.CleanIssue) error {
	header := []string{
		"id", "author_username", "assigned_username", "updated_by_username",
		"last_edited_username", "closed_by_username", "title", "description",
		"state", "created_at", "updated_at", "closed_at", "milestone", "notes",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.ID, 10), r.AuthorUsername, r.AssignedUsername,
			r.UpdatedByUsername, r.LastEditedUsername, r.ClosedByUsername,
			r.Title, r.Description, r.State, r.CreatedAt, r.UpdatedAt,
			r.ClosedAt, r.Milestone, r.Notes,
		})
	}
	return writeCSV(path, header, records)
}

// WriteMergeRequestsCSV writes the normalized merge-request rows.
func WriteMergeRequestsCSV(path string, rows []model.CleanMergeRequest) error {
	header := []string{
		"id", "author_username", "assignees", "reviewers", "title",
		"description", "state", "source_branch", "target_branch",
		"created_at", "updated_at", "approvals", "events", "milestone", "notes",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.FormatInt(r.ID, 10), r.AuthorUsername, r.Assignees,
			r.Reviewers, r.Title, r.Description, r.State, r.SourceBranch,
			r.TargetBranch, r.CreatedAt, r.UpdatedAt, r.Approvals, r.Events,
			r.Milestone, r.Notes,
		})
	}
	return writeCSV(path, header, records)
}

// ReadRatingsCSV reads a "username,productivity,satisfaction" file into a
// ratings map. Values are validated by the scorer, not here; this only
// requires well-formed integers.
func ReadRatingsCSV(path string) (map[string]score.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	ratings := make(map[string]score.Rating, len(records))
	for i, rec := range records {
		if i == 0 && rec[0] == "username" {
			continue // optional header
		}
		p, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: productivity %q is not an integer", path, i+1, rec[1])
		}
		s, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: satisfaction %q is not an integer", path, i+1, rec[2])
		}
		ratings[rec[0]] = score.Rating{Productivity: p, Satisfaction: s}
	}
	return ratings, nil
}
