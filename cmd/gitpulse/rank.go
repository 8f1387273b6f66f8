package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitpulse-cli/gitpulse/internal/config"
	"github.com/gitpulse-cli/gitpulse/internal/output"
	"github.com/gitpulse-cli/gitpulse/internal/render"
	"github.com/gitpulse-cli/gitpulse/internal/report"
	"github.com/gitpulse-cli/gitpulse/internal/score"
	"github.com/gitpulse-cli/gitpulse/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank authors by productivity and collaboration scores",
}

// loadScorerInputs reads scorer inputs either from the workspace's combined
// statistics or, when --stats is given, from an external stats workbook.
func loadScorerInputs(cmd *cobra.Command) ([]score.Input, error) {
	statsPath, _ := cmd.Flags().GetString("stats")
	if statsPath != "" {
		return report.ReadStatsWorkbook(statsPath)
	}

	combined, err := store.CombinedStats(getDB(cmd))
	if err != nil {
		return nil, err
	}
	return score.FromCombined(combined), nil
}

var rankMinMaxCmd = &cobra.Command{
	Use:   "minmax",
	Short: "Weighted min-max ranking over commits, lines, and reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		inputs, err := loadScorerInputs(cmd)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		ranked := score.MinMaxRank(inputs)
		if len(ranked) == 0 {
			return cmdErr(
				fmt.Errorf("no authors to rank: run 'gitpulse tally' and 'gitpulse gitlog' first"),
				output.ErrNotFound,
			)
		}

		path := cfg.ReportPath(config.MinMaxRankingXLSX)
		if err := report.WriteMinMaxRanking(path, ranked); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		var message string
		if !w.JSONMode {
			message = render.MinMaxTable(ranked)
		}
		w.Info("Wrote %s", config.MinMaxRankingXLSX)
		w.Success(ranked, message)
		return nil
	},
}

var rankSpaceCmd = &cobra.Command{
	Use:   "space",
	Short: "SPACE-model ranking with self-reported ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		normFlag, _ := cmd.Flags().GetString("normalization")
		var norm score.Normalization
		switch normFlag {
		case "max":
			norm = score.NormMaxScale
		case "zscore":
			norm = score.NormZScore
		default:
			return cmdErr(
				fmt.Errorf("invalid normalization %q: must be max or zscore", normFlag),
				output.ErrValidation,
			)
		}

		inputs, err := loadScorerInputs(cmd)
		if err != nil {
			return cmdErr(err, output.ErrGeneral)
		}
		if len(inputs) == 0 {
			return cmdErr(
				fmt.Errorf("no authors to rank: run 'gitpulse tally' and 'gitpulse gitlog' first"),
				output.ErrNotFound,
			)
		}

		ratings, err := collectRatings(cmd, inputs)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		result, err := score.SpaceRank(inputs, ratings, norm)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		path := cfg.ReportPath(config.SpaceRankingXLSX)
		if err := report.WriteSpaceRanking(path, result); err != nil {
			return cmdErr(err, output.ErrGeneral)
		}

		if result.LowConfidence {
			w.Warn("Every author scored identically; this ranking carries no signal")
		}
		for _, r := range result.Rows {
			if r.Inactive {
				w.Warn("%s had no commits and no assigned work in the window", r.Author)
			}
		}

		var message string
		if !w.JSONMode {
			message = render.SpaceTable(result)
		}
		w.Info("Wrote %s", config.SpaceRankingXLSX)
		w.Success(result.Rows, message)
		return nil
	},
}

// collectRatings gathers the two self-reported ratings per author, from the
// --ratings file when given, else interactively.
func collectRatings(cmd *cobra.Command, inputs []score.Input) (map[string]score.Rating, error) {
	ratingsPath, _ := cmd.Flags().GetString("ratings")
	if ratingsPath != "" {
		return report.ReadRatingsCSV(ratingsPath)
	}

	return promptRatings(score.Authors(inputs))
}

func init() {
	rankMinMaxCmd.Flags().String("stats", "", "Rank an external stats workbook instead of the workspace")
	rankSpaceCmd.Flags().String("stats", "", "Rank an external stats workbook instead of the workspace")
	rankSpaceCmd.Flags().String("ratings", "", "CSV of username,productivity,satisfaction ratings")
	rankSpaceCmd.Flags().String("normalization", "max", "Signal normalization: max or zscore")
	rankCmd.AddCommand(rankMinMaxCmd)
	rankCmd.AddCommand(rankSpaceCmd)
	rootCmd.AddCommand(rankCmd)
}
