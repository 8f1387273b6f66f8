package main

import (
	"github.com/spf13/cobra"

	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/output"
	"github.com/gitpulse-cli/gitpulse/internal/render"
	"github.com/gitpulse-cli/gitpulse/internal/store"
)

type reportResult struct {
	Comments      int                   `json:"comments"`
	Issues        int                   `json:"issues"`
	MergeRequests int                   `json:"merge_requests"`
	Stats         []model.CombinedStats `json:"stats"`
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a digest of the collected statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
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
		stats, err := store.CombinedStats(conn)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		result := reportResult{
			Comments:      len(comments),
			Issues:        len(issues),
			MergeRequests: len(mrs),
			Stats:         stats,
		}

		var message string
		if !w.JSONMode {
			digest := render.Digest(stats, len(comments), len(issues), len(mrs))
			message, err = render.Markdown(digest)
			if err != nil {
				return cmdErr(err, output.ErrGeneral)
			}
		}
		w.Success(result, message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
