package similarity

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"wordassoc/internal/histogram"
	"wordassoc/internal/pipeline"
)

const (
	// DefaultLength is the number of top frequencies compared per base word.
	DefaultLength = 10
	// NoLimit makes Similar return every other base word.
	NoLimit = 0
	// padValue fills short histograms; 0 would leave chi-square cells undefined.
	padValue = 1
)

var ErrUnknownWord = errors.New("base word not in matrix")

// Distribution is one base word's histogram as seen by the matrix.
type Distribution struct {
	BaseWord  string
	Histogram histogram.Histogram
}

type Neighbour struct {
	BaseWord string  `json:"base_word"`
	Distance float64 `json:"distance"`
}

// Matrix holds the pairwise chi-square distance of every base word pair.
type Matrix struct {
	labels []string
	index  map[string]int
	dist   *mat.SymDense
}

// DifferenceMatrix compares the top length enabled frequencies of every pair
// of distributions. Rows are computed in parallel; each cell of the upper
// triangle is written exactly once. Duplicate base words keep their first
// distribution.
func DifferenceMatrix(dists []Distribution, length, workers int) *Matrix {
	if length <= 0 {
		length = DefaultLength
	}

	m := &Matrix{index: map[string]int{}}
	vectors := make([][]float64, 0, len(dists))
	for _, d := range dists {
		if _, dup := m.index[d.BaseWord]; dup {
			continue
		}
		m.index[d.BaseWord] = len(m.labels)
		m.labels = append(m.labels, d.BaseWord)
		vectors = append(vectors, Vector(d.Histogram, length))
	}
	if len(m.labels) == 0 {
		return m
	}

	m.dist = mat.NewSymDense(len(m.labels), nil)
	pipeline.Run(pipeline.Indexes(len(vectors)), workers, func(i int) error {
		for j := i; j < len(vectors); j++ {
			m.dist.SetSym(i, j, ChiSquare(vectors[i], vectors[j]))
		}
		return nil
	})
	return m
}

// Vector returns the first length enabled frequencies, right-padded with 1.
func Vector(h histogram.Histogram, length int) []float64 {
	out := h.Enabled().Frequencies(length)
	for len(out) < length {
		out = append(out, padValue)
	}
	return out
}

// ChiSquare is Pearson's statistic for the 2×n contingency table formed by a
// and b. It is symmetric in its arguments and 0 for identical vectors. It is
// intentionally not the goodness-of-fit form that treats b as expected counts,
// which would make the matrix asymmetric.
func ChiSquare(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	rowA, rowB := floats.Sum(a), floats.Sum(b)
	total := rowA + rowB
	if total == 0 {
		return 0
	}

	expA := make([]float64, len(a))
	expB := make([]float64, len(b))
	for j := range a {
		col := a[j] + b[j]
		expA[j] = rowA * col / total
		expB[j] = rowB * col / total
	}
	return stat.ChiSquare(a, expA) + stat.ChiSquare(b, expB)
}

func (m *Matrix) Labels() []string {
	return slices.Clone(m.labels)
}

func (m *Matrix) Len() int {
	return len(m.labels)
}

// At returns the distance between two base words.
func (m *Matrix) At(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, b)
	}
	return m.dist.At(i, j), nil
}

// Row returns the distances from word to every base word, in label order.
func (m *Matrix) Row(word string) ([]float64, error) {
	i, ok := m.index[word]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	row := make([]float64, len(m.labels))
	for j := range row {
		row[j] = m.dist.At(i, j)
	}
	return row, nil
}

// Similar ranks the other base words by distance to word, nearest first, and
// returns at most limit of them. limit <= 0 (NoLimit) returns all of them.
// Equal distances keep label order.
func Similar(word string, m *Matrix, limit int) ([]Neighbour, error) {
	row, err := m.Row(word)
	if err != nil {
		return nil, err
	}

	self := m.index[word]
	order := make([]int, 0, len(row))
	for j := range row {
		if j != self {
			order = append(order, j)
		}
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(row[a], row[b])
	})
	if limit > NoLimit && limit < len(order) {
		order = order[:limit]
	}

	out := make([]Neighbour, 0, len(order))
	for _, j := range order {
		out = append(out, Neighbour{BaseWord: m.labels[j], Distance: row[j]})
	}
	return out, nil
}
