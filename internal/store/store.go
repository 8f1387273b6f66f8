// Package store is the sqlite workspace the pipeline stages hand data
// through. Each stage replaces its own tables wholesale; nothing here is
// durable state, just the stage-to-stage hand-off.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Open opens or creates the workspace database at path. The pool is capped
// at one connection; sqlite is single-writer and the pipeline is
// single-threaded anyway.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening workspace: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		user_id INTEGER PRIMARY KEY,
		username TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		created TEXT NOT NULL,
		author_username TEXT NOT NULL,
		comment TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS issues (
		id INTEGER PRIMARY KEY,
		author_username TEXT NOT NULL,
		assigned_username TEXT NOT NULL,
		updated_by_username TEXT NOT NULL,
		last_edited_username TEXT NOT NULL,
		closed_by_username TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		state TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		closed_at TEXT NOT NULL,
		milestone TEXT NOT NULL,
		notes TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS merge_requests (
		id INTEGER PRIMARY KEY,
		author_username TEXT NOT NULL,
		assignees TEXT NOT NULL,
		reviewers TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		state TEXT NOT NULL,
		source_branch TEXT NOT NULL,
		target_branch TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		approvals TEXT NOT NULL,
		events TEXT NOT NULL,
		milestone TEXT NOT NULL,
		notes TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS author_stats (
		username TEXT PRIMARY KEY,
		gitlab_actions INTEGER NOT NULL DEFAULT 0,
		comments_written INTEGER NOT NULL DEFAULT 0,
		issues_assigned INTEGER NOT NULL DEFAULT 0,
		merge_requests_assigned INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS git_stats (
		author TEXT PRIMARY KEY,
		commits INTEGER NOT NULL DEFAULT 0,
		lines_added INTEGER NOT NULL DEFAULT 0
	)`,
}

// Initialize creates all workspace tables and records the schema version.
func Initialize(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	_, err := db.Exec(
		`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprintf("%d", schemaVersion),
	)
	if err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}

// SchemaVersion reads the recorded schema version.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}
