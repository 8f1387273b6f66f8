package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gitpulse-cli/gitpulse/internal/config"
	"github.com/gitpulse-cli/gitpulse/internal/identity"
	"github.com/gitpulse-cli/gitpulse/internal/model"
	"github.com/gitpulse-cli/gitpulse/internal/normalize"
	"github.com/gitpulse-cli/gitpulse/internal/output"
	"github.com/gitpulse-cli/gitpulse/internal/report"
	"github.com/gitpulse-cli/gitpulse/internal/store"
)

type extractResult struct {
	Members       int  `json:"members"`
	Issues        int  `json:"issues"`
	MergeRequests int  `json:"merge_requests"`
	Comments      int  `json:"comments"`
	Windowed      bool `json:"windowed"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <issues.ndjson> <merge_requests.ndjson> <members.ndjson>",
	Short: "Normalize raw export dumps into cleaned tables",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)
		conn := getDB(cmd)

		surveyDate, _ := cmd.Flags().GetString("survey-date")
		stripEmoji, _ := cmd.Flags().GetBool("strip-emoji")

		normalizer := normalize.Normalizer{}
		if surveyDate != "" {
			day, err := parseSurveyDate(surveyDate)
			if err != nil {
				return cmdErr(err, output.ErrValidation)
			}
			window := normalize.SurveyWindow(day)
			normalizer.Window = &window
		}

		issues, err := model.ReadNDJSON[model.Issue](args[0])
		if err != nil {
			return cmdErr(fmt.Errorf("reading issues dump: %w", err), output.ErrGeneral)
		}
		mrs, err := model.ReadNDJSON[model.MergeRequest](args[1])
		if err != nil {
			return cmdErr(fmt.Errorf("reading merge-requests dump: %w", err), output.ErrGeneral)
		}
		members, err := model.ReadNDJSON[model.Member](args[2])
		if err != nil {
			return cmdErr(fmt.Errorf("reading members dump: %w", err), output.ErrGeneral)
		}

		normalizer.Roster = identity.Build(members, stripEmoji)

		cleanIssues, issueComments := normalizer.Issues(issues)
		cleanMRs, mrComments := normalizer.MergeRequests(mrs)
		comments := append(issueComments, mrComments...)

		if err := store.ReplaceIssues(conn, cleanIssues); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		if err := store.ReplaceMergeRequests(conn, cleanMRs); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		if err := store.ReplaceComments(conn, comments); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		if err := report.WriteIssuesCSV(cfg.ReportPath(config.CleanedIssuesCSV), cleanIssues); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		if err := report.WriteMergeRequestsCSV(cfg.ReportPath(config.CleanedMergeRequestsCSV), cleanMRs); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		if err := report.WriteCommentsCSV(cfg.ReportPath(config.AllCommentsCSV), comments); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		result := extractResult{
			Members:       normalizer.Roster.Len(),
			Issues:        len(cleanIssues),
			MergeRequests: len(cleanMRs),
			Comments:      len(comments),
			Windowed:      normalizer.Window != nil,
		}

		w.Info("Wrote %s, %s, %s",
			config.CleanedIssuesCSV, config.CleanedMergeRequestsCSV, config.AllCommentsCSV)
		w.Success(result, fmt.Sprintf(
			"Normalized %s issues, %s merge requests, %s comments (%s members on roster)",
			humanize.Comma(int64(result.Issues)),
			humanize.Comma(int64(result.MergeRequests)),
			humanize.Comma(int64(result.Comments)),
			humanize.Comma(int64(result.Members)),
		))
		return nil
	},
}

func init() {
	extractCmd.Flags().String("survey-date", "", "Restrict to the 15-day window before this date (YYYY-MM-DD)")
	extractCmd.Flags().Bool("strip-emoji", false, "Strip emoji from roster usernames")
	rootCmd.AddCommand(extractCmd)
}
