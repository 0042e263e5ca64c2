package analysis

import (
	"cmp"
	"fmt"
	"slices"

	"wordassoc/internal/stats"
)

// DefaultWindow is the number of top answers summarized per base word.
const DefaultWindow = 6

// Sort keys accepted by SortSummaries.
const (
	SortAlpha             = "alpha"
	SortStandardDeviation = "standard_deviation"
	SortSkewness          = "skewness"
	SortKurtosis          = "kurtosis"
)

// Summary describes the first Window enabled answers of one base word.
type Summary struct {
	BaseWord   string      `json:"base_word"`
	Window     int         `json:"window"`
	FAS        []float64   `json:"fas"`
	Statistics stats.Stats `json:"statistics"`
}

// Summarize computes FAS and statistics over each WordSet's first window
// enabled entries. window <= 0 uses DefaultWindow.
func Summarize(sets []WordSet, window int) ([]Summary, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make([]Summary, 0, len(sets))
	for _, ws := range sets {
		top := ws.Histogram.Enabled()
		top = top[:min(window, len(top))]
		fas, err := stats.FAS(top)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", ws.BaseWord, err)
		}
		out = append(out, Summary{
			BaseWord:   ws.BaseWord,
			Window:     window,
			FAS:        fas,
			Statistics: stats.Compute(top),
		})
	}
	return out, nil
}

// SortSummaries orders summaries alphabetically or by a statistic, largest
// first. Ties fall back to the base word.
func SortSummaries(summaries []Summary, key string) error {
	var value func(s Summary) float64
	switch key {
	case SortAlpha, "":
		slices.SortStableFunc(summaries, func(a, b Summary) int {
			return cmp.Compare(a.BaseWord, b.BaseWord)
		})
		return nil
	case SortStandardDeviation:
		value = func(s Summary) float64 { return s.Statistics.StandardDeviation }
	case SortSkewness:
		value = func(s Summary) float64 { return s.Statistics.Skewness }
	case SortKurtosis:
		value = func(s Summary) float64 { return s.Statistics.Kurtosis }
	default:
		return fmt.Errorf("sort summaries: unknown key %q", key)
	}
	slices.SortStableFunc(summaries, func(a, b Summary) int {
		if c := cmp.Compare(value(b), value(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.BaseWord, b.BaseWord)
	})
	return nil
}

// SortKeys lists the keys accepted by SortSummaries.
func SortKeys() []string {
	return []string{SortAlpha, SortStandardDeviation, SortSkewness, SortKurtosis}
}
