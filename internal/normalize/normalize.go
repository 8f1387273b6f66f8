// Package normalize flattens raw issue and merge-request records into
// tabular rows with resolved usernames and human-readable dates.
package normalize

import (
	"fmt"
	"strings"

	"github.com/gitpulse-cli/gitpulse/internal/identity"
	"github.com/gitpulse-cli/gitpulse/internal/model"
)

// Normalizer resolves ids through the roster and, when Window is non-nil,
// restricts output to records and notes created inside the window.
type Normalizer struct {
	Roster *identity.Roster
	Window *Window
}

// inWindow applies the optional window to a raw timestamp. With no window
// everything passes; with a window, unparseable timestamps are treated as
// out of range rather than errors.
func (n *Normalizer) inWindow(ts string) bool {
	if n.Window == nil {
		return true
	}
	t, ok := ParseTimestamp(ts)
	if !ok {
		return false
	}
	return n.Window.Contains(t)
}

// Issues normalizes raw issue records into clean rows plus standalone
// comment rows flattened out of each record's notes.
func (n *Normalizer) Issues(issues []model.Issue) ([]model.CleanIssue, []model.CommentRow) {
	var clean []model.CleanIssue
	var comments []model.CommentRow

	for _, is := range issues {
		if !n.inWindow(is.CreatedAt) {
			continue
		}

		comments = append(comments, n.flattenNotes("Issue", is.Title, is.Notes)...)

		row := model.CleanIssue{
			ID:                 is.ID,
			AuthorUsername:     n.Roster.Resolve(is.AuthorID),
			AssignedUsername:   n.firstAssignee(is.IssueAssignees),
			UpdatedByUsername:  n.resolveOptional(is.UpdatedByID),
			LastEditedUsername: n.resolveOptional(is.LastEditedByID),
			ClosedByUsername:   n.resolveOptional(is.ClosedByID),
			Title:              is.Title,
			Description:        is.Description,
			State:              is.State,
			CreatedAt:          FormatDate(is.CreatedAt),
			UpdatedAt:          FormatDate(is.UpdatedAt),
			ClosedAt:           FormatDate(is.ClosedAt),
			Milestone:          formatMilestone(is.Milestone),
			Notes:              notesBlob(is.Notes),
		}
		clean = append(clean, row)
	}

	return clean, comments
}

// MergeRequests normalizes raw merge-request records into clean rows plus
// standalone comment rows.
func (n *Normalizer) MergeRequests(mrs []model.MergeRequest) ([]model.CleanMergeRequest, []model.CommentRow) {
	var clean []model.CleanMergeRequest
	var comments []model.CommentRow

	for _, mr := range mrs {
		if !n.inWindow(mr.CreatedAt) {
			continue
		}

		comments = append(comments, n.flattenNotes("Merge Request", mr.Title, mr.Notes)...)

		row := model.CleanMergeRequest{
			ID:             mr.ID,
			AuthorUsername: n.Roster.Resolve(mr.AuthorID),
			Assignees:      n.joinUserRefs(mr.Assignees),
			Reviewers:      n.joinUserRefs(mr.Reviewers),
			Title:          mr.Title,
			Description:    mr.Description,
			State:          mr.State,
			SourceBranch:   mr.SourceBranch,
			TargetBranch:   mr.TargetBranch,
			CreatedAt:      FormatDate(mr.CreatedAt),
			UpdatedAt:      FormatDate(mr.UpdatedAt),
			Approvals:      n.joinUserRefs(mr.Approvals),
			Events:         n.joinEvents(mr.Events),
			Milestone:      formatMilestone(mr.Milestone),
			Notes:          notesBlob(mr.Notes),
		}
		clean = append(clean, row)
	}

	return clean, comments
}

// flattenNotes emits one comment row per note that carries a creation
// timestamp and, when a window is active, falls inside it.
func (n *Normalizer) flattenNotes(source, title string, notes model.NoteList) []model.CommentRow {
	var rows []model.CommentRow
	for _, note := range notes {
		if note.CreatedAt == "" {
			continue
		}
		if !n.inWindow(note.CreatedAt) {
			continue
		}
		rows = append(rows, model.CommentRow{
			Source:         source,
			Title:          title,
			Created:        FormatDate(note.CreatedAt),
			AuthorUsername: n.Roster.Resolve(note.AuthorID),
			Comment:        note.Note,
		})
	}
	return rows
}

// resolveOptional resolves an optional id column: nil stays null (empty),
// a present id resolves through the roster with the "Unknown" fallback.
func (n *Normalizer) resolveOptional(id *int64) string {
	if id == nil {
		return ""
	}
	return n.Roster.Resolve(id)
}

// firstAssignee collapses an assignee list to the first entry's resolved
// username, or null when the list is empty.
func (n *Normalizer) firstAssignee(refs []model.UserRef) string {
	if len(refs) == 0 {
		return ""
	}
	return n.Roster.Resolve(refs[0].UserID)
}

// joinUserRefs collapses a user-reference list into "username on date"
// segments joined by "; ".
func (n *Normalizer) joinUserRefs(refs []model.UserRef) string {
	segments := make([]string, 0, len(refs))
	for _, ref := range refs {
		segments = append(segments,
			fmt.Sprintf("%s on %s", n.Roster.Resolve(ref.UserID), FormatDate(ref.CreatedAt)))
	}
	return strings.Join(segments, "; ")
}

// joinEvents collapses timeline events into "username action on date"
// segments joined by "; ".
func (n *Normalizer) joinEvents(events []model.Event) string {
	segments := make([]string, 0, len(events))
	for _, ev := range events {
		segments = append(segments,
			fmt.Sprintf("%s %s on %s", n.Roster.Resolve(ev.AuthorID), ev.Action, FormatDate(ev.CreatedAt)))
	}
	return strings.Join(segments, "; ")
}

// formatMilestone collapses a milestone object into a pipe-delimited text
// summary; each segment appears only when its field is present.
func formatMilestone(m *model.Milestone) string {
	if m == nil {
		return ""
	}
	var parts []string
	if m.Title != "" {
		parts = append(parts, "Title: "+m.Title)
	}
	if m.Description != "" {
		parts = append(parts, "Description: "+m.Description)
	}
	if m.StartDate != "" {
		parts = append(parts, "Start: "+FormatDate(m.StartDate))
	}
	if m.DueDate != "" {
		parts = append(parts, "Due: "+FormatDate(m.DueDate))
	}
	return strings.Join(parts, " | ")
}

// notesBlob renders the retained parent's notes as a single text column:
// each note's trimmed text followed by an attribution line, notes joined by
// a visible separator. The attribution uses the note's embedded author name
// when the export carries one.
func notesBlob(notes model.NoteList) string {
	if len(notes) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(notes))
	for _, note := range notes {
		name := model.UnknownAuthor
		if note.Author != nil && note.Author.Name != "" {
			name = note.Author.Name
		}
		rendered = append(rendered, fmt.Sprintf("%s\n(by %s on %s)",
			strings.TrimSpace(note.Note), name, FormatDate(note.CreatedAt)))
	}
	return strings.Join(rendered, "\n---\n")
}
