package histogram

import (
	"cmp"
	"slices"
)

type Entry struct {
	Word        string   `json:"word"`
	Frequency   int      `json:"frequency"`
	MergedWords []string `json:"merged_words,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
}

// Histogram is a ranked frequency table, most frequent word first.
type Histogram []Entry

// Build counts non-nil tokens. Words with equal counts keep the order in which
// they first appeared.
func Build(tokens []*string) Histogram {
	counts := map[string]int{}
	order := make([]string, 0)
	for _, t := range tokens {
		if t == nil {
			continue
		}
		if _, ok := counts[*t]; !ok {
			order = append(order, *t)
		}
		counts[*t]++
	}

	out := make(Histogram, 0, len(order))
	for _, w := range order {
		out = append(out, Entry{Word: w, Frequency: counts[w]})
	}
	out.sort()
	return out
}

// Merge folds each group's trailing words into its first word. A group whose
// main word is missing is skipped entirely; missing trailing words are ignored.
func Merge(h Histogram, groups [][]string) Histogram {
	out := h.clone()
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		main := out.Index(group[0])
		if main < 0 {
			continue
		}
		for _, w := range group[1:] {
			if w == group[0] {
				continue
			}
			pos := out.Index(w)
			if pos < 0 {
				continue
			}
			absorbed := out[pos]
			out[main].Frequency += absorbed.Frequency
			out[main].MergedWords = append(out[main].MergedWords, w)
			out[main].MergedWords = append(out[main].MergedWords, absorbed.MergedWords...)
			out = slices.Delete(out, pos, pos+1)
			if pos < main {
				main--
			}
		}
	}
	out.sort()
	return out
}

// Disable flags the given words. Order and counts are left untouched.
func Disable(h Histogram, words []string) Histogram {
	out := h.clone()
	if len(words) == 0 {
		return out
	}
	disabled := make(map[string]struct{}, len(words))
	for _, w := range words {
		disabled[w] = struct{}{}
	}
	for i := range out {
		if _, ok := disabled[out[i].Word]; ok {
			out[i].Disabled = true
		}
	}
	return out
}

// Enabled returns the entries that take part in statistics, in rank order.
func (h Histogram) Enabled() Histogram {
	out := make(Histogram, 0, len(h))
	for _, e := range h {
		if !e.Disabled {
			out = append(out, e)
		}
	}
	return out
}

func (h Histogram) Index(word string) int {
	return slices.IndexFunc(h, func(e Entry) bool { return e.Word == word })
}

func (h Histogram) Total() int {
	total := 0
	for _, e := range h {
		total += e.Frequency
	}
	return total
}

// Frequencies returns the counts of the first n entries; n < 0 means all.
func (h Histogram) Frequencies(n int) []float64 {
	if n < 0 || n > len(h) {
		n = len(h)
	}
	out := make([]float64, n)
	for i := range n {
		out[i] = float64(h[i].Frequency)
	}
	return out
}

func (h Histogram) clone() Histogram {
	out := make(Histogram, len(h))
	for i, e := range h {
		e.MergedWords = slices.Clone(e.MergedWords)
		out[i] = e
	}
	return out
}

func (h Histogram) sort() {
	slices.SortStableFunc(h, func(a, b Entry) int {
		return cmp.Compare(b.Frequency, a.Frequency)
	})
}
