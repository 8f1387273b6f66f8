package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/score"
)

// writeWorkbook writes a single-sheet workbook with a header row plus one
// row per record, overwriting any existing file.
func writeWorkbook(path, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	writeRow := func(rowIdx int, values []any) error {
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	headerValues := make([]any, len(header))
	for i, h := range header {
		headerValues[i] = h
	}
	if err := writeRow(1, headerValues); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// WriteGitContributions writes the git tallier's output workbook.
func WriteGitContributions(path string, rows []model.GitStats) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Author, r.Commits, r.LinesAdded})
	}
	return writeWorkbook(path, "Authors",
		[]string{"author", "commits", "lines_added"}, records)
}

// WriteContributionTable writes the contribution tallier's output workbook.
func WriteContributionTable(path string, rows []model.AuthorStats) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Username, r.GitlabActions, r.CommentsWritten,
			r.IssuesAssigned, r.MergeRequestsAssigned,
		})
	}
	return writeWorkbook(path, "Contributions",
		[]string{"author_username", "gitlab_actions", "comments_written",
			"issues_assigned", "merge_requests_assigned"}, records)
}

// WriteMinMaxRanking writes the weighted min-max ranking workbook.
func WriteMinMaxRanking(path string, rows []score.MinMaxRanked) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Rank, r.Author, r.NormCommits, r.NormLines, r.NormReviews, r.FinalScore,
		})
	}
	return writeWorkbook(path, "Ranking",
		[]string{"rank", "author", "norm_commits", "norm_lines", "norm_reviews", "final_score"},
		records)
}

// WriteSpaceRanking writes the SPACE ranking workbook.
func WriteSpaceRanking(path string, result score.SpaceResult) error {
	records := make([][]any, 0, len(result.Rows))
	for _, r := range result.Rows {
		records = append(records, []any{
			r.Rank, r.Author, r.TaskCompletion, r.Satisfaction,
			r.Performance, r.Activity, r.Collaboration, r.FinalScore, r.Inactive,
		})
	}
	return writeWorkbook(path, "Ranking",
		[]string{"rank", "author", "task_completion", "s_score", "p_score",
			"a_score", "c_score", "final_score", "inactive"},
		records)
}

var leadingDigits = regexp.MustCompile(`\d+`)

// statsColumns maps the header spellings seen across the two stats-table
// shapes onto canonical column names.
var statsColumns = map[string]string{
	"author":                  "author",
	"author_username":         "author",
	"commits":                 "commits",
	"commits_(%)":             "commits",
	"lines_added":             "lines",
	"+_lines":                 "lines",
	"comments_written":        "reviews",
	"reviews":                 "reviews",
	"gitlab_actions":          "actions",
	"issues_assigned":         "issues",
	"merge_requests_assigned": "mrs",
}

// ReadStatsWorkbook loads scorer inputs from a stats workbook's first
// sheet. It tolerates both table shapes the pipeline has produced over
// time: the native one and the merged-by-hand one with "Commits (%)" and
// "+ lines" columns, where the numeric value is the leading digit run.
func ReadStatsWorkbook(path string) ([]score.Input, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Map column index -> canonical name.
	columns := make(map[int]string)
	for i, h := range rows[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if canonical, ok := statsColumns[key]; ok {
			columns[i] = canonical
		}
	}

	var inputs []score.Input
	for _, row := range rows[1:] {
		var in score.Input
		for i, cell := range row {
			canonical, ok := columns[i]
			if !ok {
				continue
			}
			if canonical == "author" {
				in.Author = strings.TrimSpace(cell)
				continue
			}
			value := parseCellNumber(cell)
			switch canonical {
			case "commits":
				in.Commits = value
			case "lines":
				in.LinesAdded = value
			case "reviews":
				in.Reviews = value
			case "actions":
				in.GitlabActions = value
			case "issues":
				in.IssuesAssigned = value
			case "mrs":
				in.MergeRequestsAssigned = value
			}
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// parseCellNumber reads a numeric cell, falling back to the first digit run
// for decorated values like "42 (17%)". Malformed cells read as zero.
func parseCellNumber(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	if digits := leadingDigits.FindString(cell); digits != "" {
		if v, err := strconv.ParseFloat(digits, 64); err == nil {
			return v
		}
	}
	return 0
}
