package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"wordassoc/internal/histogram"
)

var ErrZeroSum = errors.New("fas: slice frequency sum is zero")

type Stats struct {
	StandardDeviation float64 `json:"standard_deviation"`
	Skewness          float64 `json:"skewness"`
	Kurtosis          float64 `json:"kurtosis"`
}

// Compute describes the enabled part of a histogram.
//
// StandardDeviation is the sample standard deviation of the raw counts.
// Skewness and Kurtosis (excess) describe the sample in which every enabled
// entry's rank is repeated frequency times, i.e. how strongly the answers
// concentrate on the top-ranked words. Both divide the population central
// moment by the matching power of the sample standard deviation, with no
// small-sample correction. Degenerate results are reported as 0.
func Compute(h histogram.Histogram) Stats {
	enabled := h.Enabled()
	if len(enabled) == 0 {
		return Stats{}
	}

	counts := enabled.Frequencies(-1)
	ranks := make([]float64, len(enabled))
	for i := range ranks {
		ranks[i] = float64(i)
	}

	_, sd := stat.MeanStdDev(ranks, counts)
	return Stats{
		StandardDeviation: finite(stat.StdDev(counts, nil)),
		Skewness:          finite(stat.Moment(3, ranks, counts) / math.Pow(sd, 3)),
		Kurtosis:          finite(stat.Moment(4, ranks, counts)/math.Pow(sd, 4) - 3),
	}
}

// FAS returns each enabled entry's share of the slice total. An empty slice
// yields an empty result.
func FAS(h histogram.Histogram) ([]float64, error) {
	enabled := h.Enabled()
	out := make([]float64, 0, len(enabled))
	if len(enabled) == 0 {
		return out, nil
	}
	sum := enabled.Total()
	if sum == 0 {
		return nil, ErrZeroSum
	}
	for _, e := range enabled {
		out = append(out, float64(e.Frequency)/float64(sum))
	}
	return out, nil
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
