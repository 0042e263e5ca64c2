package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wordassoc/internal/analysis"
	"wordassoc/internal/report"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var sortKey string
	var outPath string
	var window int
	var table bool

	cmd := &cobra.Command{
		Use:   "export <kind>",
		Short: "Write FAS shares and statistics of every base word as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			survey, err := ctx.openSurvey(args[0])
			if err != nil {
				return err
			}
			responses, dir, err := ctx.loadSurveyData(survey)
			if err != nil {
				return err
			}

			if window <= 0 {
				window = cfg.Analysis.SummaryWindow
			}
			key := strings.TrimSpace(sortKey)
			if key == "" {
				key = cfg.Export.SortKey
			}

			sets := analysis.Histograms(responses, dir, ctx.analysisOptions())
			summaries, err := analysis.Summarize(sets, window)
			if err != nil {
				return err
			}
			if err := analysis.SortSummaries(summaries, key); err != nil {
				return fmt.Errorf("%w (choose one of %s)", err, strings.Join(analysis.SortKeys(), ", "))
			}

			if table {
				fmt.Fprintln(cmd.OutOrStdout(), report.SummaryTable(summaries))
				return nil
			}

			format := report.Format{Delimiter: cfg.Export.Delimiter, DecimalSeparator: cfg.Export.DecimalSeparator}
			if outPath == "-" {
				return report.WriteSummaryCSV(cmd.OutOrStdout(), summaries, window, format)
			}
			target := outPath
			if target == "" {
				target = filepath.Join(cfg.Paths.Workspace, "exports", survey.ID+"-fas.csv")
			}
			if err := writeFileWith(target, func(w io.Writer) error {
				return report.WriteSummaryCSV(w, summaries, window, format)
			}); err != nil {
				return err
			}

			ctx.ensureLogger().Info("summary exported",
				zap.String("kind", survey.Kind),
				zap.String("path", target),
				zap.Int("base_words", len(summaries)),
				zap.String("sort", key),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d base words to %s\n", len(summaries), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Row order: alpha, standard_deviation, skewness or kurtosis")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (- for stdout)")
	cmd.Flags().IntVar(&window, "window", 0, "Top answers per base word (default from config)")
	cmd.Flags().BoolVar(&table, "table", false, "Print a table instead of writing CSV")
	return cmd
}

func writeFileWith(path string, fn func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	return nil
}
