package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"wordassoc/internal/analysis"
)

// Format controls the spreadsheet dialect of WriteSummaryCSV.
type Format struct {
	Delimiter        string
	DecimalSeparator string
}

// DefaultFormat matches spreadsheets set to a Polish locale.
func DefaultFormat() Format {
	return Format{Delimiter: ";", DecimalSeparator: ","}
}

const exportPrecision = 6

// WriteSummaryCSV writes one row per summary with columns base word,
// FAS_1..FAS_window, sd, skewness and kurtosis. Rows with fewer shares than
// window are padded with empty cells.
func WriteSummaryCSV(w io.Writer, summaries []analysis.Summary, window int, f Format) error {
	if window <= 0 {
		window = analysis.DefaultWindow
	}
	if f.Delimiter == "" {
		f.Delimiter = DefaultFormat().Delimiter
	}
	if f.DecimalSeparator == "" {
		f.DecimalSeparator = DefaultFormat().DecimalSeparator
	}
	comma, size := utf8.DecodeRuneInString(f.Delimiter)
	if size != len(f.Delimiter) {
		return fmt.Errorf("csv delimiter must be one character, got %q", f.Delimiter)
	}
	if f.Delimiter == f.DecimalSeparator {
		return errors.New("csv delimiter and decimal separator must differ")
	}

	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(summaryHeaders(window)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range summaries {
		if err := cw.Write(summaryRow(s, window, exportPrecision, f.DecimalSeparator)); err != nil {
			return fmt.Errorf("write csv row %q: %w", s.BaseWord, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func summaryHeaders(window int) []string {
	headers := []string{"base word"}
	for i := 1; i <= window; i++ {
		headers = append(headers, "FAS_"+strconv.Itoa(i))
	}
	return append(headers, "sd", "skewness", "kurtosis")
}

func summaryRow(s analysis.Summary, window, precision int, decimal string) []string {
	row := make([]string, 0, window+4)
	row = append(row, s.BaseWord)
	for i := range window {
		if i < len(s.FAS) {
			row = append(row, formatFloat(s.FAS[i], precision, decimal))
		} else {
			row = append(row, "")
		}
	}
	return append(row,
		formatFloat(s.Statistics.StandardDeviation, precision, decimal),
		formatFloat(s.Statistics.Skewness, precision, decimal),
		formatFloat(s.Statistics.Kurtosis, precision, decimal),
	)
}

func summaryWidth(summaries []analysis.Summary) int {
	width := 0
	for _, s := range summaries {
		width = max(width, s.Window, len(s.FAS))
	}
	if width == 0 {
		return analysis.DefaultWindow
	}
	return width
}

func formatFloat(v float64, precision int, decimal string) string {
	out := strconv.FormatFloat(v, 'f', precision, 64)
	if decimal != "." {
		out = strings.Replace(out, ".", decimal, 1)
	}
	return out
}
