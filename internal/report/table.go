// Package report renders analysis results for the terminal and for
// spreadsheet export.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"wordassoc/internal/analysis"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Heading returns a section title, coloured when colorize is set.
func Heading(title string, colorize bool) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if !colorize {
		return line
	}
	c := color.New(color.FgCyan, color.Bold)
	c.EnableColor()
	return c.Sprint(line)
}

// WordSetTable lists the top answers of one base word. top <= 0 lists all.
func WordSetTable(ws analysis.WordSet, top int) string {
	h := ws.Histogram
	if top > 0 && top < len(h) {
		h = h[:top]
	}
	total := ws.Histogram.Enabled().Total()
	rows := make([][]string, 0, len(h))
	for i, e := range h {
		share := ""
		if !e.Disabled && total > 0 {
			share = formatFloat(float64(e.Frequency)/float64(total), 3, ".")
		}
		state := ""
		if e.Disabled {
			state = "disabled"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			e.Word,
			strconv.Itoa(e.Frequency),
			share,
			strings.Join(e.MergedWords, ", "),
			state,
		})
	}
	return renderTable(
		[]string{"#", "Answer", "Count", "Share", "Merged", "State"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	)
}

// StatisticsLine formats a WordSet's statistics on one line.
func StatisticsLine(ws analysis.WordSet) string {
	s := ws.Statistics
	return fmt.Sprintf("sd=%s skewness=%s kurtosis=%s",
		formatFloat(s.StandardDeviation, 4, "."),
		formatFloat(s.Skewness, 4, "."),
		formatFloat(s.Kurtosis, 4, "."),
	)
}

// NeighbourTable lists the base words whose distributions are closest.
func NeighbourTable(ws analysis.WordSet) string {
	rows := make([][]string, 0, len(ws.SimilarDistributions))
	for i, n := range ws.SimilarDistributions {
		rows = append(rows, []string{strconv.Itoa(i + 1), n.BaseWord, formatFloat(n.Distance, 4, ".")})
	}
	return renderTable(
		[]string{"#", "Base word", "Distance"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	)
}

// SummaryTable renders one row per summary: FAS shares then statistics.
func SummaryTable(summaries []analysis.Summary) string {
	window := summaryWidth(summaries)
	headers := summaryHeaders(window)
	aligns := make([]columnAlignment, len(headers))
	for i := 1; i < len(aligns); i++ {
		aligns[i] = alignRight
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, summaryRow(s, window, 3, "."))
	}
	return renderTable(headers, rows, aligns)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
