package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gitpulse-cli/gitpulse/internal/config"
	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/output"
	"github.com/gitpulse-cli/gitpulse/internal/report"
	"github.com/gitpulse-cli/gitpulse/internal/store"
	"github.com/gitpulse-cli/gitpulse/internal/tally"
)

type tallyResult struct {
	Authors  int                 `json:"authors"`
	Comments int                 `json:"comments"`
	Stats    []model.AuthorStats `json:"stats"`
}

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Aggregate normalized rows into per-author contribution counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)
		conn := getDB(cmd)

		comments, err := store.ListComments(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		issues, err := store.ListIssues(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		mrs, err := store.ListMergeRequests(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		if len(comments) == 0 && len(issues) == 0 && len(mrs) == 0 {
			return cmdErr(
				fmt.Errorf("nothing to tally: run 'gitpulse extract' first"),
				output.ErrNotFound,
			)
		}

		stats := tally.Contributions(comments, issues, mrs)

		if err := store.ReplaceAuthorStats(conn, stats); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		path := cfg.ReportPath(config.ContributionTableXLSX)
		if err := report.WriteContributionTable(path, stats); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		w.Info("Wrote %s", config.ContributionTableXLSX)
		w.Success(tallyResult{Authors: len(stats), Comments: len(comments), Stats: stats},
			fmt.Sprintf("Tallied %s comments into %s author rows",
				humanize.Comma(int64(len(comments))),
				humanize.Comma(int64(len(stats)))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tallyCmd)
}
