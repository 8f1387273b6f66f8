// Package config resolves the workspace directory and the pipeline's file
// names.
package config

import (
	"os"
	"path/filepath"
)

const (
	workspaceDirName = ".gitpulse"
	dbFileName       = "pulse.db"
)

// Report file names, written into the workspace directory.
const (
	CleanedIssuesCSV        = "cleaned_issues.csv"
	CleanedMergeRequestsCSV = "cleaned_merge_requests.csv"
	AllCommentsCSV          = "all_comments.csv"
	GitContributionsXLSX    = "git_contributions.xlsx"
	ContributionTableXLSX   = "contribution_table.xlsx"
	MinMaxRankingXLSX       = "ranking_minmax.xlsx"
	SpaceRankingXLSX        = "ranking_space.xlsx"
)

// Config holds resolved paths for the workspace directory and database.
type Config struct {
	WorkDir   string // resolved .gitpulse directory path
	DBPath    string // full path to pulse.db
	EnvVarSet bool   // whether GITPULSE_PATH was used
}

// Resolve returns the current configuration by checking GITPULSE_PATH first,
// then falling back to $PWD/.gitpulse.
func Resolve() (*Config, error) {
	var workDir string
	var envVarSet bool

	if envPath := os.Getenv("GITPULSE_PATH"); envPath != "" {
		workDir = envPath
		envVarSet = true
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workDir = filepath.Join(cwd, workspaceDirName)
	}

	return &Config{
		WorkDir:   workDir,
		DBPath:    filepath.Join(workDir, dbFileName),
		EnvVarSet: envVarSet,
	}, nil
}

// Exists checks if the workspace directory and DB file both exist.
// It returns an error for non-existence failures (e.g. permission errors).
func (c *Config) Exists() (bool, error) {
	if _, err := os.Stat(c.WorkDir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if _, err := os.Stat(c.DBPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReportPath returns the full path of a report file inside the workspace.
func (c *Config) ReportPath(name string) string {
	return filepath.Join(c.WorkDir, name)
}
