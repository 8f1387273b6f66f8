package main

import (
	"errors"
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gitpulse-cli/gitpulse/internal/config"
	"github.com/gitpulse-cli/gitpulse/internal/gitlog"
	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/normalize"
	"github.com/gitpulse-cli/gitpulse/internal/output"
	"github.com/gitpulse-cli/gitpulse/internal/report"
	"github.com/gitpulse-cli/gitpulse/internal/store"
)

type gitlogResult struct {
	Authors int              `json:"authors"`
	Since   string           `json:"since"`
	Until   string           `json:"until"`
	Stats   []model.GitStats `json:"stats"`
}

var gitlogCmd = &cobra.Command{
	Use:   "gitlog",
	Short: "Tally commits and added lines per author from git history",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)
		conn := getDB(cmd)

		repoDir, _ := cmd.Flags().GetString("repo")
		surveyDate, _ := cmd.Flags().GetString("survey-date")

		var day time.Time
		var err error
		if surveyDate == "" {
			day, err = promptSurveyDate()
		} else {
			day, err = parseSurveyDate(surveyDate)
		}
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		window := normalize.SurveyWindow(day)
		w.Info("Collecting commits from %s to %s (exclusive)",
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

		stats, err := gitlog.Collect(cmd.Context(), repoDir, window)
		if err != nil {
			if errors.Is(err, gitlog.ErrNotARepository) {
				return cmdErr(
					fmt.Errorf("%s is not inside a git repository", repoDir),
					output.ErrEnvironment,
				)
			}
			return cmdErr(err, output.ErrEnvironment)
		}

		if err := store.ReplaceGitStats(conn, stats); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		path := cfg.ReportPath(config.GitContributionsXLSX)
		if err := report.WriteGitContributions(path, stats); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		w.Info("Wrote %s", config.GitContributionsXLSX)
		w.Success(gitlogResult{
			Authors: len(stats),
			Since:   window.Start.Format("2006-01-02"),
			Until:   window.End.Format("2006-01-02"),
			Stats:   stats,
		}, fmt.Sprintf("Tallied commits for %s authors", humanize.Comma(int64(len(stats)))))
		return nil
	},
}

func init() {
	gitlogCmd.Flags().String("survey-date", "", "Survey date bounding the 15-day window (YYYY-MM-DD)")
	gitlogCmd.Flags().String("repo", ".", "Git working copy to read history from")
	rootCmd.AddCommand(gitlogCmd)
}
