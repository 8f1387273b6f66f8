package model

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Member is one record from the project-members dump. Records that lack the
// nested user or its username are kept as-is and skipped by the roster
// builder.
type Member struct {
	UserID *int64      `json:"user_id"`
	User   *MemberUser `json:"user"`
}

// MemberUser is the nested user object on a member record.
type MemberUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Note is a single note/comment embedded in an issue or merge request.
type Note struct {
	AuthorID  *int64      `json:"author_id"`
	Note      string      `json:"note"`
	CreatedAt string      `json:"created_at"`
	Author    *NoteAuthor `json:"author"`
}

// NoteAuthor is the denormalized author object some exports embed per note.
type NoteAuthor struct {
	Name string `json:"name"`
}

// NoteList decodes the notes field of an issue or merge request. The export
// sometimes carries a literal JSON array and sometimes the same array
// re-encoded as a string; anything else decodes to an empty list.
type NoteList []Note

// UnmarshalJSON implements the tolerant decoding described above.
func (nl *NoteList) UnmarshalJSON(data []byte) error {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err == nil {
		*nl = notes
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		if err := json.Unmarshal([]byte(encoded), &notes); err == nil {
			*nl = notes
			return nil
		}
	}

	*nl = nil
	return nil
}

// Milestone is the nested milestone object on an issue or merge request.
type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
}

// UserRef is a user reference with a timestamp, as found in assignee,
// reviewer, and approval lists.
type UserRef struct {
	UserID    *int64 `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// Event is a timeline event on a merge request.
type Event struct {
	AuthorID  *int64 `json:"author_id"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}

// Issue is one record from the issues dump, limited to the fields the
// pipeline consumes. Unknown fields are ignored by encoding/json.
type Issue struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	State          string    `json:"state"`
	AuthorID       *int64    `json:"author_id"`
	UpdatedByID    *int64    `json:"updated_by_id"`
	LastEditedByID *int64    `json:"last_edited_by_id"`
	ClosedByID     *int64    `json:"closed_by_id"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
	ClosedAt       string    `json:"closed_at"`
	Milestone      *Milestone `json:"milestone"`
	IssueAssignees []UserRef `json:"issue_assignees"`
	Notes          NoteList  `json:"notes"`
}

// MergeRequest is one record from the merge-requests dump.
type MergeRequest struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	State        string     `json:"state"`
	SourceBranch string     `json:"source_branch"`
	TargetBranch string     `json:"target_branch"`
	AuthorID     *int64     `json:"author_id"`
	CreatedAt    string     `json:"created_at"`
	UpdatedAt    string     `json:"updated_at"`
	Milestone    *Milestone `json:"milestone"`
	Assignees    []UserRef  `json:"merge_request_assignees"`
	Reviewers    []UserRef  `json:"merge_request_reviewers"`
	Approvals    []UserRef  `json:"approvals"`
	Events       []Event    `json:"events"`
	Notes        NoteList   `json:"notes"`
}

// maxRecordSize bounds a single NDJSON line; merge requests with large
// embedded note threads can run to megabytes.
const maxRecordSize = 16 * 1024 * 1024

// ReadNDJSON reads a newline-delimited JSON dump into a slice of T.
// Blank lines are skipped; a malformed line is an error since the dump
// itself is a control input, not per-row optional data.
func ReadNDJSON[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return records, nil
}
