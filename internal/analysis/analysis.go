// Package analysis turns raw survey answers into per-base-word results.
//
// Every call is a pure batch transform: the caller hands over all answers for
// one survey kind together with the merge and disable directives it has stored,
// and receives fresh WordSet records. Nothing is cached between calls.
package analysis

import (
	"time"

	"go.uber.org/zap"

	"wordassoc/internal/histogram"
	"wordassoc/internal/normalize"
	"wordassoc/internal/similarity"
	"wordassoc/internal/stats"
)

// RawResponse is one free-text answer to one base word. A nil Text is an
// answer that was never given.
type RawResponse struct {
	BaseWord string  `json:"base_word"`
	Text     *string `json:"text"`
}

// Directives is the operator's current merge and disable state for one kind.
type Directives struct {
	// Merges maps a base word to its merge groups, main word first.
	Merges map[string][][]string `json:"merges"`
	// Disabled maps a base word to the answers excluded from statistics.
	Disabled map[string][]string `json:"disabled"`
}

type WordSet struct {
	BaseWord             string                 `json:"base_word"`
	Histogram            histogram.Histogram    `json:"histogram"`
	Statistics           stats.Stats            `json:"statistics"`
	SimilarDistributions []similarity.Neighbour `json:"similar_distributions"`
}

type Options struct {
	// HistogramLength is how many top frequencies feed the distance matrix.
	HistogramLength int
	// SimilarLimit caps SimilarDistributions; similarity.NoLimit keeps all.
	SimilarLimit int
	FoldCase     bool
	// Workers bounds the distance matrix worker pool; 0 uses every CPU.
	Workers int
	Logger  *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		HistogramLength: similarity.DefaultLength,
		SimilarLimit:    5,
		FoldCase:        true,
	}
}

// Analyze builds one WordSet per base word, in order of first appearance.
func Analyze(responses []RawResponse, dir Directives, opts Options) []WordSet {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()

	sets := Histograms(responses, dir, opts)

	dists := make([]similarity.Distribution, len(sets))
	for i, ws := range sets {
		dists[i] = similarity.Distribution{BaseWord: ws.BaseWord, Histogram: ws.Histogram}
	}
	matrix := similarity.DifferenceMatrix(dists, opts.HistogramLength, opts.Workers)
	for i := range sets {
		neighbours, err := similarity.Similar(sets[i].BaseWord, matrix, opts.SimilarLimit)
		if err != nil {
			logger.Warn("similarity lookup failed", zap.String("base_word", sets[i].BaseWord), zap.Error(err))
			continue
		}
		sets[i].SimilarDistributions = neighbours
	}

	logger.Info("analysis complete",
		zap.Int("responses", len(responses)),
		zap.Int("base_words", len(sets)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return sets
}

// Histograms builds WordSets with histograms and statistics but without the
// cross-word similarity ranking.
func Histograms(responses []RawResponse, dir Directives, opts Options) []WordSet {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	order, grouped := groupByBaseWord(responses)
	sets := make([]WordSet, 0, len(order))
	for _, base := range order {
		tokens := normalize.Tokens(grouped[base], normalize.Options{FoldCase: opts.FoldCase})
		h := histogram.Build(tokens)
		h = histogram.Merge(h, dir.Merges[base])
		h = histogram.Disable(h, dir.Disabled[base])

		ws := WordSet{
			BaseWord:             base,
			Histogram:            h,
			Statistics:           stats.Compute(h),
			SimilarDistributions: []similarity.Neighbour{},
		}
		logger.Debug("histogram built",
			zap.String("base_word", base),
			zap.Int("answers", len(grouped[base])),
			zap.Int("distinct", len(h)),
			zap.Int("mass", h.Total()),
		)
		sets = append(sets, ws)
	}
	return sets
}

func groupByBaseWord(responses []RawResponse) ([]string, map[string][]*string) {
	order := []string{}
	grouped := map[string][]*string{}
	for _, r := range responses {
		if _, ok := grouped[r.BaseWord]; !ok {
			order = append(order, r.BaseWord)
		}
		grouped[r.BaseWord] = append(grouped[r.BaseWord], r.Text)
	}
	return order, grouped
}
