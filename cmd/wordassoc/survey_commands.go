package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordassoc/internal/analysis"
	"wordassoc/internal/db"
	"wordassoc/internal/ingest"
	"wordassoc/internal/report"
	"wordassoc/internal/similarity"
	"wordassoc/internal/workspace"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "import <kind> <file>",
		Short: "Import survey answers from a csv, json, docx or pdf file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			responses, err := ingest.ParseFile(args[1])
			if err != nil {
				return fmt.Errorf("import %s: %w", filepath.Base(args[1]), err)
			}

			var stored int
			err = ctx.withLock(survey, func() error {
				stored, err = db.ImportResponses(survey.DBPath, survey.Kind, responses, !appendMode)
				return err
			})
			if err != nil {
				return err
			}

			ctx.ensureLogger().Info("answers imported",
				zap.String("kind", survey.Kind),
				zap.String("file", args[1]),
				zap.Int("answers", stored),
				zap.Bool("append", appendMode),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d answers into %q\n", stored, survey.Kind)
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendMode, "append", false, "Keep previously imported answers of this kind")
	return cmd
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <kind>",
		Short: "Show stored answers and the latest analysis of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			responses, err := db.LoadResponses(survey.DBPath, survey.Kind)
			if err != nil {
				return err
			}
			dir, err := db.LoadDirectives(survey.DBPath, survey.Kind)
			if err != nil {
				return err
			}
			run, err := db.LatestRun(survey.DBPath, survey.Kind)
			if err != nil {
				return err
			}

			groups, disabled := 0, 0
			for _, g := range dir.Merges {
				groups += len(g)
			}
			for _, w := range dir.Disabled {
				disabled += len(w)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Kind:           %s\n", survey.Kind)
			fmt.Fprintf(out, "Answers:        %d\n", len(responses))
			fmt.Fprintf(out, "Merge groups:   %d\n", groups)
			fmt.Fprintf(out, "Disabled words: %d\n", disabled)
			if run == nil {
				fmt.Fprintln(out, "Last analysis:  never")
				return nil
			}
			fmt.Fprintf(out, "Last analysis:  %s (%s)\n", run.CreatedAt.Local().Format(time.DateTime), run.ID)
			return nil
		},
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var top int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze <kind>",
		Short: "Build histograms, statistics and similarity rankings for a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}

			var result workspace.Report
			err = ctx.withLock(survey, func() error {
				result, err = runAnalysis(ctx, survey)
				return err
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			out := cmd.OutOrStdout()
			for _, ws := range result.WordSets {
				fmt.Fprintln(out, report.Heading(ws.BaseWord, colorize))
				fmt.Fprintln(out, report.WordSetTable(ws, top))
				fmt.Fprintln(out, report.StatisticsLine(ws))
				if len(ws.SimilarDistributions) > 0 {
					fmt.Fprintln(out, report.NeighbourTable(ws))
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Report written to %s\n", survey.ReportPath)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Answers listed per base word (0 lists all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

// runAnalysis analyses the stored answers of a kind, saves the JSON report
// and records the run.
func runAnalysis(ctx *commandContext, survey *workspace.Survey) (workspace.Report, error) {
	responses, dir, err := ctx.loadSurveyData(survey)
	if err != nil {
		return workspace.Report{}, err
	}
	sets := analysis.Analyze(responses, dir, ctx.analysisOptions())
	summaries, err := analysis.Summarize(sets, ctx.config.Analysis.SummaryWindow)
	if err != nil {
		return workspace.Report{}, err
	}

	result := workspace.Report{
		Kind:        survey.Kind,
		GeneratedAt: time.Now().UTC(),
		Responses:   len(responses),
		WordSets:    sets,
		Summaries:   summaries,
	}
	runID, err := db.RecordRun(survey.DBPath, survey.Kind, len(sets), len(responses), survey.ReportPath)
	if err != nil {
		return workspace.Report{}, err
	}
	result.RunID = runID
	if err := workspace.SaveReport(survey.ReportPath, result); err != nil {
		return workspace.Report{}, err
	}
	return result, nil
}

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <kind> <base-word>",
		Short: "List the base words whose answer distributions are closest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			responses, dir, err := ctx.loadSurveyData(survey)
			if err != nil {
				return err
			}

			opts := ctx.analysisOptions()
			if cmd.Flags().Changed("limit") {
				opts.SimilarLimit = limit
			}
			for _, ws := range analysis.Analyze(responses, dir, opts) {
				if ws.BaseWord != args[1] {
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.NeighbourTable(ws))
				return nil
			}
			return fmt.Errorf("%w: %q", similarity.ErrUnknownWord, args[1])
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Neighbours to list (0 lists all; default from config)")
	return cmd
}
