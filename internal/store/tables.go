package store

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/gitpulse-cli/gitpulse/internal/model"
)

// replaceAll clears a table and inserts rows inside one transaction, so a
// re-run of a stage never leaves a half-written hand-off behind.
func replaceAll(db *sql.DB, table string, insert func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

// ReplaceComments stores the flattened comment rows from an extract run.
func ReplaceComments(db *sql.DB, rows []model.CommentRow) error {
	return replaceAll(db, "comments", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO comments (source, title, created, author_username, comment)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.Exec(r.Source, r.Title, r.Created, r.AuthorUsername, r.Comment); err != nil {
				return fmt.Errorf("inserting comment: %w", err)
			}
		}
		return nil
	})
}

// ListComments returns all stored comment rows.
func ListComments(db *sql.DB) ([]model.CommentRow, error) {
	rows, err := db.Query(
		`SELECT source, title, created, author_username, comment FROM comments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var out []model.CommentRow
	for rows.Next() {
		var c model.CommentRow
		if err := rows.Scan(&c.Source, &c.Title, &c.Created, &c.AuthorUsername, &c.Comment); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceIssues stores the normalized issue rows from an extract run.
func ReplaceIssues(db *sql.DB, rows []model.CleanIssue) error {
	return replaceAll(db, "issues", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO issues (
				id, author_username, assigned_username, updated_by_username,
				last_edited_username, closed_by_username, title, description,
				state, created_at, updated_at, closed_at, milestone, notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.Exec(
				r.ID, r.AuthorUsername, r.AssignedUsername, r.UpdatedByUsername,
				r.LastEditedUsername, r.ClosedByUsername, r.Title, r.Description,
				r.State, r.CreatedAt, r.UpdatedAt, r.ClosedAt, r.Milestone, r.Notes,
			); err != nil {
				return fmt.Errorf("inserting issue %d: %w", r.ID, err)
			}
		}
		return nil
	})
}

// ListIssues returns all normalized issue rows.
func ListIssues(db *sql.DB) ([]model.CleanIssue, error) {
	rows, err := db.Query(
		`SELECT id, author_username, assigned_username, updated_by_username,
		        last_edited_username, closed_by_username, title, description,
		        state, created_at, updated_at, closed_at, milestone, notes
		 FROM issues ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var out []model.CleanIssue
	for rows.Next() {
		var r model.CleanIssue
		if err := rows.Scan(
			&r.ID, &r.AuthorUsername, &r.AssignedUsername, &r.UpdatedByUsername,
			&r.LastEditedUsername, &r.ClosedByUsername, &r.Title, &r.Description,
			&r.State, &r.CreatedAt, &r.UpdatedAt, &r.ClosedAt, &r.Milestone, &r.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceMergeRequests stores the normalized merge-request rows.
func ReplaceMergeRequests(db *sql.DB, rows []model.CleanMergeRequest) error {
	return replaceAll(db, "merge_requests", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO merge_requests (
				id, author_username, assignees, reviewers, title, description,
				state, source_branch, target_branch, created_at, updated_at,
				approvals, events, milestone, notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.Exec(
				r.ID, r.AuthorUsername, r.Assignees, r.Reviewers, r.Title, r.Description,
				r.State, r.SourceBranch, r.TargetBranch, r.CreatedAt, r.UpdatedAt,
				r.Approvals, r.Events, r.Milestone, r.Notes,
			); err != nil {
				return fmt.Errorf("inserting merge request %d: %w", r.ID, err)
			}
		}
		return nil
	})
}

// ListMergeRequests returns all normalized merge-request rows.
func ListMergeRequests(db *sql.DB) ([]model.CleanMergeRequest, error) {
	rows, err := db.Query(
		`SELECT id, author_username, assignees, reviewers, title, description,
		        state, source_branch, target_branch, created_at, updated_at,
		        approvals, events, milestone, notes
		 FROM merge_requests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing merge requests: %w", err)
	}
	defer rows.Close()

	var out []model.CleanMergeRequest
	for rows.Next() {
		var r model.CleanMergeRequest
		if err := rows.Scan(
			&r.ID, &r.AuthorUsername, &r.Assignees, &r.Reviewers, &r.Title, &r.Description,
			&r.State, &r.SourceBranch, &r.TargetBranch, &r.CreatedAt, &r.UpdatedAt,
			&r.Approvals, &r.Events, &r.Milestone, &r.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceAuthorStats stores the tallier's per-author counts.
func ReplaceAuthorStats(db *sql.DB, rows []model.AuthorStats) error {
	return replaceAll(db, "author_stats", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO author_stats (
				username, gitlab_actions, comments_written,
				issues_assigned, merge_requests_assigned
			) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.Exec(
				r.Username, r.GitlabActions, r.CommentsWritten,
				r.IssuesAssigned, r.MergeRequestsAssigned,
			); err != nil {
				return fmt.Errorf("inserting stats for %q: %w", r.Username, err)
			}
		}
		return nil
	})
}

// ListAuthorStats returns all stored author statistics, sorted by username.
func ListAuthorStats(db *sql.DB) ([]model.AuthorStats, error) {
	rows, err := db.Query(
		`SELECT username, gitlab_actions, comments_written,
		        issues_assigned, merge_requests_assigned
		 FROM author_stats ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("listing author stats: %w", err)
	}
	defer rows.Close()

	var out []model.AuthorStats
	for rows.Next() {
		var r model.AuthorStats
		if err := rows.Scan(
			&r.Username, &r.GitlabActions, &r.CommentsWritten,
			&r.IssuesAssigned, &r.MergeRequestsAssigned,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReplaceGitStats stores the git tallier's per-author counts.
func ReplaceGitStats(db *sql.DB, rows []model.GitStats) error {
	return replaceAll(db, "git_stats", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT INTO git_stats (author, commits, lines_added) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range rows {
			if _, err := stmt.Exec(r.Author, r.Commits, r.LinesAdded); err != nil {
				return fmt.Errorf("inserting git stats for %q: %w", r.Author, err)
			}
		}
		return nil
	})
}

// ListGitStats returns all stored git statistics, sorted by author.
func ListGitStats(db *sql.DB) ([]model.GitStats, error) {
	rows, err := db.Query(
		`SELECT author, commits, lines_added FROM git_stats ORDER BY author`)
	if err != nil {
		return nil, fmt.Errorf("listing git stats: %w", err)
	}
	defer rows.Close()

	var out []model.GitStats
	for rows.Next() {
		var r model.GitStats
		if err := rows.Scan(&r.Author, &r.Commits, &r.LinesAdded); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CombinedStats merges author_stats and git_stats by author name. An author
// present on only one side keeps zeros for the other; rows are created
// lazily for every distinct name, matching the tallier's semantics.
func CombinedStats(db *sql.DB) ([]model.CombinedStats, error) {
	authorStats, err := ListAuthorStats(db)
	if err != nil {
		return nil, err
	}
	gitStats, err := ListGitStats(db)
	if err != nil {
		return nil, err
	}

	byAuthor := make(map[string]*model.CombinedStats)
	row := func(name string) *model.CombinedStats {
		if r, ok := byAuthor[name]; ok {
			return r
		}
		r := &model.CombinedStats{Author: name}
		byAuthor[name] = r
		return r
	}

	for _, s := range authorStats {
		r := row(s.Username)
		r.GitlabActions = s.GitlabActions
		r.CommentsWritten = s.CommentsWritten
		r.IssuesAssigned = s.IssuesAssigned
		r.MergeRequestsAssigned = s.MergeRequestsAssigned
	}
	for _, s := range gitStats {
		r := row(s.Author)
		r.Commits = s.Commits
		r.LinesAdded = s.LinesAdded
	}

	out := make([]model.CombinedStats, 0, len(byAuthor))
	for _, r := range byAuthor {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Author < out[j].Author })
	return out, nil
}
