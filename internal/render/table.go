package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/score"
)

// MinMaxTable renders the weighted min-max ranking as a console table.
func MinMaxTable(rows []score.MinMaxRanked) string {
	if len(rows) == 0 {
		return EmptyState("No authors to rank.", "Run 'gitpulse tally' and 'gitpulse gitlog' first.")
	}

	headers := []string{"Rank", "Author", "Commits", "Lines", "Reviews", "Score"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Author,
			fmt.Sprintf("%.3f", r.NormCommits),
			fmt.Sprintf("%.3f", r.NormLines),
			fmt.Sprintf("%.3f", r.NormReviews),
			fmt.Sprintf("%.3f", r.FinalScore),
		})
	}
	return renderRows(headers, cells)
}

// SpaceTable renders the SPACE ranking as a console table. Inactive authors
// are marked in a trailing column rather than excluded.
func SpaceTable(result score.SpaceResult) string {
	if len(result.Rows) == 0 {
		return EmptyState("No authors to rank.", "Run 'gitpulse tally' and 'gitpulse gitlog' first.")
	}

	headers := []string{"Rank", "Author", "Tasks", "S", "P", "A", "C", "Score", ""}
	cells := make([][]string, 0, len(result.Rows))
	for _, r := range result.Rows {
		flag := ""
		if r.Inactive {
			flag = "inactive"
		}
		cells = append(cells, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Author,
			fmt.Sprintf("%.0f", r.TaskCompletion),
			fmt.Sprintf("%.1f", r.Satisfaction),
			fmt.Sprintf("%.1f", r.Performance),
			fmt.Sprintf("%.1f", r.Activity),
			fmt.Sprintf("%.1f", r.Collaboration),
			fmt.Sprintf("%.2f", r.FinalScore),
			flag,
		})
	}
	return renderRows(headers, cells)
}

// StatsTable renders the combined per-author statistics.
func StatsTable(rows []model.CombinedStats) string {
	if len(rows) == 0 {
		return EmptyState("No statistics collected.", "Run 'gitpulse extract' first.")
	}

	headers := []string{"Author", "Commits", "Lines", "Actions", "Comments", "Issues", "MRs"}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Author,
			fmt.Sprintf("%d", r.Commits),
			fmt.Sprintf("%d", r.LinesAdded),
			fmt.Sprintf("%d", r.GitlabActions),
			fmt.Sprintf("%d", r.CommentsWritten),
			fmt.Sprintf("%d", r.IssuesAssigned),
			fmt.Sprintf("%d", r.MergeRequestsAssigned),
		})
	}
	return renderRows(headers, cells)
}

// EmptyState renders an empty-state message with a contextual hint.
func EmptyState(message, hint string) string {
	if !ColorsEnabled() {
		return message + "\n" + hint
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	italic := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	return dim.Render(message) + "\n" + italic.Render(hint)
}

// renderRows dispatches between the styled and plain table renderers.
func renderRows(headers []string, rows [][]string) string {
	if !ColorsEnabled() {
		return renderPlain(headers, rows)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}
			if col == 1 {
				return s.Bold(true)
			}
			return s
		})

	return t.Render()
}

// renderPlain renders fixed-width rows bordered by a horizontal rule sized
// to the widest printed line.
func renderPlain(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, line(headers))
	for _, row := range rows {
		lines = append(lines, line(row))
	}

	widest := 0
	for _, l := range lines {
		if len(l) > widest {
			widest = len(l)
		}
	}
	rule := strings.Repeat("-", widest)

	var b strings.Builder
	b.WriteString(rule + "\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString(rule)
	return b.String()
}
