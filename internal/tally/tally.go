// Package tally aggregates normalized rows into per-author contribution
// counts.
package tally

import (
	"sort"
	"strings"

	"github.com/gitpulse-cli/gitpulse/internal/model"
)

// systemNotePrefixes classify host-generated notes. A comment whose text
// starts (case-insensitively) with any of these counts as a system action,
// not an authored comment.
var systemNotePrefixes = []string{
	"changed due date",
	"assigned to",
	"removed due date",
	"changed the description",
	"marked the checklist item",
	"changed title from",
	"mentioned in commit",
	"mentioned in merge request",
	"marked this issue",
	"unassigned",
	"requested review",
	"added 1 commit",
	"made the issue confidential",
	"made the issue visible to everyone",
	"approved this merge request",
	"created branch",
}

// IsSystemNote reports whether text is a host-generated note rather than an
// authored comment.
func IsSystemNote(text string) bool {
	lower := strings.ToLower(text)
	for _, prefix := range systemNotePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Contributions scans comments, then issues, then merge requests, and
// returns one aggregate row per author, sorted ascending by username.
// Rows are created on first reference with all counts at zero.
func Contributions(comments []model.CommentRow, issues []model.CleanIssue, mrs []model.CleanMergeRequest) []model.AuthorStats {
	stats := make(map[string]*model.AuthorStats)

	row := func(author string) *model.AuthorStats {
		if s, ok := stats[author]; ok {
			return s
		}
		s := &model.AuthorStats{Username: author}
		stats[author] = s
		return s
	}

	// Every comment increments exactly one of the two buckets.
	for _, c := range comments {
		s := row(c.AuthorUsername)
		if IsSystemNote(c.Comment) {
			s.GitlabActions++
		} else {
			s.CommentsWritten++
		}
	}

	for _, is := range issues {
		if is.AssignedUsername == "" {
			continue
		}
		row(is.AssignedUsername).IssuesAssigned++
	}

	for _, mr := range mrs {
		row(creditMergeRequest(stats, mr)).MergeRequestsAssigned++
	}

	out := make([]model.AuthorStats, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// creditMergeRequest picks the author a merge request counts toward: the
// already-known author whose username prefixes the raw assignees text, else
// the merge request's own author. Known authors are scanned longest-first
// in sorted order so that a username that prefixes another cannot steal
// credit on map-iteration luck.
func creditMergeRequest(stats map[string]*model.AuthorStats, mr model.CleanMergeRequest) string {
	known := make([]string, 0, len(stats))
	for author := range stats {
		known = append(known, author)
	}
	sort.Slice(known, func(i, j int) bool {
		if len(known[i]) != len(known[j]) {
			return len(known[i]) > len(known[j])
		}
		return known[i] < known[j]
	})

	for _, author := range known {
		if author != "" && strings.HasPrefix(mr.Assignees, author) {
			return author
		}
	}
	return mr.AuthorUsername
}
