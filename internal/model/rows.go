package model

// UnknownAuthor is the sentinel every unresolved author id collapses into.
const UnknownAuthor = "Unknown"

// CommentRow is one flattened note, extracted from its parent issue or
// merge request. Created is the long-form calendar date, empty when the
// source timestamp did not parse.
type CommentRow struct {
	Source         string `json:"type"` // "Issue" or "Merge Request"
	Title          string `json:"title"`
	Created        string `json:"created"`
	AuthorUsername string `json:"author_username"`
	Comment        string `json:"comment"`
}

// CleanIssue is a normalized issue row. All *_by_id fields are replaced by
// resolved username columns; dates are long-form calendar dates; empty
// strings stand for null.
type CleanIssue struct {
	ID                 int64  `json:"id"`
	AuthorUsername     string `json:"author_username"`
	AssignedUsername   string `json:"assigned_username"`
	UpdatedByUsername  string `json:"updated_by_username"`
	LastEditedUsername string `json:"last_edited_username"`
	ClosedByUsername   string `json:"closed_by_username"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	State              string `json:"state"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	ClosedAt           string `json:"closed_at"`
	Milestone          string `json:"milestone"`
	Notes              string `json:"notes"`
}

// CleanMergeRequest is a normalized merge-request row. The embedded
// assignee, reviewer, approval, and event lists are collapsed into
// semicolon-joined text summaries.
type CleanMergeRequest struct {
	ID             int64  `json:"id"`
	AuthorUsername string `json:"author_username"`
	Assignees      string `json:"assignees"`
	Reviewers      string `json:"reviewers"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	State          string `json:"state"`
	SourceBranch   string `json:"source_branch"`
	TargetBranch   string `json:"target_branch"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	Approvals      string `json:"approvals"`
	Events         string `json:"events"`
	Milestone      string `json:"milestone"`
	Notes          string `json:"notes"`
}

// AuthorStats is one author's aggregate interface-activity counts, built
// lazily by the tallier with all counts starting at zero.
type AuthorStats struct {
	Username              string `json:"author_username"`
	GitlabActions         int    `json:"gitlab_actions"`
	CommentsWritten       int    `json:"comments_written"`
	IssuesAssigned        int    `json:"issues_assigned"`
	MergeRequestsAssigned int    `json:"merge_requests_assigned"`
}

// GitStats is one author's commit activity derived from version-control
// history.
type GitStats struct {
	Author     string `json:"author"`
	Commits    int    `json:"commits"`
	LinesAdded int    `json:"lines_added"`
}

// CombinedStats joins AuthorStats and GitStats by author name. An author
// seen on only one side carries zeros for the other.
type CombinedStats struct {
	Author                string `json:"author"`
	Commits               int    `json:"commits"`
	LinesAdded            int    `json:"lines_added"`
	GitlabActions         int    `json:"gitlab_actions"`
	CommentsWritten       int    `json:"comments_written"`
	IssuesAssigned        int    `json:"issues_assigned"`
	MergeRequestsAssigned int    `json:"merge_requests_assigned"`
}
