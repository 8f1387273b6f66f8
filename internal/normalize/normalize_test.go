package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/gitpulse-cli/gitpulse/internal/identity"
	"github.com/gitpulse-cli/gitpulse/internal/model"
)

func int64Ptr(v int64) *int64 { return &v }

func testRoster(t *testing.T) *identity.Roster {
	t.Helper()
	return identity.Build([]model.Member{
		{UserID: int64Ptr(1), User: &model.MemberUser{Username: "alice"}},
		{UserID: int64Ptr(2), User: &model.MemberUser{Username: "bob"}},
	}, false)
}

func TestIssuesEmitCommentRows(t *testing.T) {
	n := Normalizer{Roster: testRoster(t)}

	issues := []model.Issue{{
		ID:       10,
		Title:    "Broken login",
		AuthorID: int64Ptr(1),
		Notes: model.NoteList{
			{AuthorID: int64Ptr(1), Note: "assigned to bob", CreatedAt: "2024-01-05T10:00:00Z"},
		},
	}}

	clean, comments := n.Issues(issues)

	if len(clean) != 1 {
		t.Fatalf("got %d clean issues, want 1", len(clean))
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comment rows, want 1", len(comments))
	}

	c := comments[0]
	if c.Source != "Issue" {
		t.Errorf("source = %q, want Issue", c.Source)
	}
	if c.Title != "Broken login" {
		t.Errorf("title = %q", c.Title)
	}
	if c.AuthorUsername != "alice" {
		t.Errorf("author = %q, want alice", c.AuthorUsername)
	}
	if c.Created != "January 05, 2024" {
		t.Errorf("created = %q, want January 05, 2024", c.Created)
	}
	if c.Comment != "assigned to bob" {
		t.Errorf("comment = %q", c.Comment)
	}
}

func TestIssuesResolveByIDColumns(t *testing.T) {
	n := Normalizer{Roster: testRoster(t)}

	issues := []model.Issue{{
		ID:             11,
		AuthorID:       int64Ptr(1),
		UpdatedByID:    int64Ptr(2),
		ClosedByID:     int64Ptr(99), // not on roster
		CreatedAt:      "2024-01-02T08:00:00Z",
		IssueAssignees: []model.UserRef{{UserID: int64Ptr(2)}, {UserID: int64Ptr(1)}},
	}}

	clean, _ := n.Issues(issues)
	row := clean[0]

	if row.AuthorUsername != "alice" {
		t.Errorf("author = %q, want alice", row.AuthorUsername)
	}
	if row.UpdatedByUsername != "bob" {
		t.Errorf("updated_by = %q, want bob", row.UpdatedByUsername)
	}
	if row.ClosedByUsername != model.UnknownAuthor {
		t.Errorf("closed_by = %q, want %q", row.ClosedByUsername, model.UnknownAuthor)
	}
	if row.LastEditedUsername != "" {
		t.Errorf("last_edited = %q, want empty for absent id", row.LastEditedUsername)
	}
	// Assignee list collapses to the first entry only.
	if row.AssignedUsername != "bob" {
		t.Errorf("assigned = %q, want bob", row.AssignedUsername)
	}
	if row.CreatedAt != "January 02, 2024" {
		t.Errorf("created_at = %q", row.CreatedAt)
	}
}

func TestMilestoneSummary(t *testing.T) {
	n := Normalizer{Roster: testRoster(t)}

	issues := []model.Issue{{
		ID: 12,
		Milestone: &model.Milestone{
			Title:     "v1.0",
			StartDate: "2024-01-01",
			DueDate:   "2024-02-01",
		},
	}}

	clean, _ := n.Issues(issues)
	want := "Title: v1.0 | Start: January 01, 2024 | Due: February 01, 2024"
	if clean[0].Milestone != want {
		t.Errorf("milestone = %q, want %q", clean[0].Milestone, want)
	}
}

func TestNotesBlobAttribution(t *testing.T) {
	n := Normalizer{Roster: testRoster(t)}

	issues := []model.Issue{{
		ID: 13,
		Notes: model.NoteList{
			{
				Note:      "  first note  ",
				CreatedAt: "2024-01-05T10:00:00Z",
				Author:    &model.NoteAuthor{Name: "Alice A"},
			},
			{
				Note:      "second",
				CreatedAt: "2024-01-06T10:00:00Z",
			},
		},
	}}

	clean, _ := n.Issues(issues)
	blob := clean[0].Notes

	if !strings.Contains(blob, "first note\n(by Alice A on January 05, 2024)") {
		t.Errorf("missing attributed first note in blob:\n%s", blob)
	}
	if !strings.Contains(blob, "\n---\n") {
		t.Errorf("missing separator in blob:\n%s", blob)
	}
	if !strings.Contains(blob, "(by Unknown on January 06, 2024)") {
		t.Errorf("missing Unknown attribution in blob:\n%s", blob)
	}
}

func TestMergeRequestSummaries(t *testing.T) {
	n := Normalizer{Roster: testRoster(t)}

	mrs := []model.MergeRequest{{
		ID:       20,
		AuthorID: int64Ptr(2),
		Assignees: []model.UserRef{
			{UserID: int64Ptr(1), CreatedAt: "2024-01-03T09:00:00Z"},
		},
		Approvals: []model.UserRef{
			{UserID: int64Ptr(2), CreatedAt: "2024-01-04T09:00:00Z"},
			{UserID: int64Ptr(1), CreatedAt: "2024-01-05T09:00:00Z"},
		},
		Events: []model.Event{
			{AuthorID: int64Ptr(2), Action: "pushed", CreatedAt: "2024-01-03T11:00:00Z"},
		},
	}}

	clean, _ := n.MergeRequests(mrs)
	row := clean[0]

	if row.Assignees != "alice on January 03, 2024" {
		t.Errorf("assignees = %q", row.Assignees)
	}
	if row.Approvals != "bob on January 04, 2024; alice on January 05, 2024" {
		t.Errorf("approvals = %q", row.Approvals)
	}
	if row.Events != "bob pushed on January 03, 2024" {
		t.Errorf("events = %q", row.Events)
	}
}

func TestWindowFiltersNotesAndRecords(t *testing.T) {
	w := SurveyWindow(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	n := Normalizer{Roster: testRoster(t), Window: &w}

	issues := []model.Issue{
		{
			ID:        1,
			CreatedAt: "2024-01-10T00:00:00Z",
			Notes: model.NoteList{
				{AuthorID: int64Ptr(1), Note: "in range", CreatedAt: "2024-01-05T00:00:00Z"},
				{AuthorID: int64Ptr(1), Note: "at end bound", CreatedAt: "2024-01-20T00:00:00Z"},
				{AuthorID: int64Ptr(1), Note: "unparseable", CreatedAt: "not-a-date"},
			},
		},
		{ID: 2, CreatedAt: "2023-12-01T00:00:00Z"}, // record outside window
		{ID: 3, CreatedAt: ""},                     // unparseable record, window active
	}

	clean, comments := n.Issues(issues)

	if len(clean) != 1 {
		t.Fatalf("got %d clean issues, want 1", len(clean))
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Comment != "in range" {
		t.Errorf("kept comment = %q, want the in-range one", comments[0].Comment)
	}
}

func TestNoWindowKeepsEverything(t *testing.T) {
	n := Normalizer{Roster: testRoster(t)}

	issues := []model.Issue{
		{ID: 1, CreatedAt: ""},
		{ID: 2, CreatedAt: "garbage"},
	}

	clean, _ := n.Issues(issues)
	if len(clean) != 2 {
		t.Fatalf("got %d clean issues, want 2 (no window, no filtering)", len(clean))
	}
	if clean[0].CreatedAt != "" || clean[1].CreatedAt != "" {
		t.Error("unparseable timestamps should become empty, not error")
	}
}
