package render

import (
	"fmt"
	"strings"

	"github.com/gitpulse-cli/gitpulse/internal/model"
)

// Digest builds a markdown summary of the collected statistics, suitable
// for terminal rendering via Markdown.
func Digest(stats []model.CombinedStats, commentCount, issueCount, mrCount int) string {
	var b strings.Builder

	b.WriteString("# Contributor activity digest\n\n")
	fmt.Fprintf(&b, "Normalized records: %d comments, %d issues, %d merge requests.\n\n",
		commentCount, issueCount, mrCount)

	if len(stats) == 0 {
		b.WriteString("No per-author statistics collected yet. ")
		b.WriteString("Run `gitpulse tally` and `gitpulse gitlog`.\n")
		return b.String()
	}

	b.WriteString("| Author | Commits | Lines | Actions | Comments | Issues | MRs |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range stats {
		fmt.Fprintf(&b, "| %s | %d | %d | %d | %d | %d | %d |\n",
			r.Author, r.Commits, r.LinesAdded, r.GitlabActions,
			r.CommentsWritten, r.IssuesAssigned, r.MergeRequestsAssigned)
	}

	b.WriteString("\nRank with `gitpulse rank minmax` or `gitpulse rank space`.\n")
	return b.String()
}
