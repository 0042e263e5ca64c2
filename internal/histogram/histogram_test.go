package histogram

import (
	"slices"
	"testing"
)

func ptrs(values ...string) []*string {
	out := make([]*string, len(values))
	for i := range values {
		v := values[i]
		out[i] = &v
	}
	return out
}

func TestBuildCountsAndOrders(t *testing.T) {
	tokens := ptrs("psa", "kot", "kot", "mysz", "kot", "pies", "pies")
	tokens = append(tokens, nil, nil)

	h := Build(tokens)
	want := []Entry{
		{Word: "kot", Frequency: 3},
		{Word: "pies", Frequency: 2},
		{Word: "psa", Frequency: 1},
		{Word: "mysz", Frequency: 1},
	}
	if len(h) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), h)
	}
	for i := range want {
		if h[i].Word != want[i].Word || h[i].Frequency != want[i].Frequency {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], h[i])
		}
	}
	if h.Total() != 7 {
		t.Fatalf("expected total mass 7 (nils dropped), got %d", h.Total())
	}
}

func TestBuildEmpty(t *testing.T) {
	if h := Build(nil); len(h) != 0 {
		t.Fatalf("expected empty histogram, got %+v", h)
	}
}

func TestMergeExample(t *testing.T) {
	h := Histogram{
		{Word: "kot", Frequency: 3},
		{Word: "kocisko", Frequency: 2},
		{Word: "psa", Frequency: 1},
	}
	got := Merge(h, [][]string{{"kot", "kocisko"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	if got[0].Word != "kot" || got[0].Frequency != 5 || !slices.Equal(got[0].MergedWords, []string{"kocisko"}) {
		t.Fatalf("unexpected merged entry %+v", got[0])
	}
	if got[1].Word != "psa" || got[1].Frequency != 1 {
		t.Fatalf("unexpected tail entry %+v", got[1])
	}
	if len(h) != 3 || h[0].Frequency != 3 || h[0].MergedWords != nil {
		t.Fatalf("merge must not mutate its input, got %+v", h)
	}
}

func TestMergeResortsAndPreservesMass(t *testing.T) {
	h := Histogram{
		{Word: "a", Frequency: 5},
		{Word: "b", Frequency: 4},
		{Word: "c", Frequency: 3},
		{Word: "d", Frequency: 2},
	}
	got := Merge(h, [][]string{{"d", "c", "b"}})
	if got[0].Word != "d" || got[0].Frequency != 9 {
		t.Fatalf("expected merged main word on top, got %+v", got)
	}
	if got.Total() != h.Total() {
		t.Fatalf("mass changed: %d -> %d", h.Total(), got.Total())
	}
}

func TestMergeMissingMainIsNoop(t *testing.T) {
	h := Histogram{{Word: "kot", Frequency: 3}, {Word: "psa", Frequency: 1}}
	got := Merge(h, [][]string{{"pies", "psa"}, {}})
	if len(got) != 2 || got[1].Word != "psa" || got[1].Frequency != 1 {
		t.Fatalf("expected untouched histogram, got %+v", got)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	h := Histogram{
		{Word: "kot", Frequency: 3},
		{Word: "kocisko", Frequency: 2},
		{Word: "kotek", Frequency: 2},
		{Word: "psa", Frequency: 1},
	}
	groups := [][]string{{"kot", "kocisko", "kotek", "brak"}}
	once := Merge(h, groups)
	twice := Merge(once, groups)
	if len(once) != len(twice) {
		t.Fatalf("expected same length, got %d and %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Word != twice[i].Word || once[i].Frequency != twice[i].Frequency ||
			!slices.Equal(once[i].MergedWords, twice[i].MergedWords) {
			t.Fatalf("entry %d differs: %+v vs %+v", i, once[i], twice[i])
		}
	}
	if !slices.Equal(once[0].MergedWords, []string{"kocisko", "kotek"}) {
		t.Fatalf("unexpected merged words %v", once[0].MergedWords)
	}
}

func TestMergeCarriesNestedMergedWords(t *testing.T) {
	h := Histogram{
		{Word: "kot", Frequency: 3},
		{Word: "kotek", Frequency: 2, MergedWords: []string{"koteczek"}},
	}
	got := Merge(h, [][]string{{"kot", "kotek"}})
	if !slices.Equal(got[0].MergedWords, []string{"kotek", "koteczek"}) {
		t.Fatalf("unexpected merged words %v", got[0].MergedWords)
	}
}

func TestDisableFlagsOnly(t *testing.T) {
	h := Histogram{
		{Word: "kot", Frequency: 3},
		{Word: "psa", Frequency: 2},
		{Word: "dom", Frequency: 1},
	}
	got := Disable(h, []string{"psa", "nieznane"})
	if len(got) != len(h) {
		t.Fatalf("disable changed length: %d -> %d", len(h), len(got))
	}
	for i := range h {
		if got[i].Word != h[i].Word || got[i].Frequency != h[i].Frequency {
			t.Fatalf("disable changed entry %d: %+v -> %+v", i, h[i], got[i])
		}
	}
	if !got[1].Disabled || got[0].Disabled || got[2].Disabled {
		t.Fatalf("unexpected disabled flags %+v", got)
	}
	if h[1].Disabled {
		t.Fatal("disable must not mutate its input")
	}

	enabled := got.Enabled()
	if len(enabled) != 2 || enabled[1].Word != "dom" {
		t.Fatalf("unexpected enabled entries %+v", enabled)
	}
}

func TestFrequencies(t *testing.T) {
	h := Histogram{{Word: "a", Frequency: 4}, {Word: "b", Frequency: 2}}
	if got := h.Frequencies(1); !slices.Equal(got, []float64{4}) {
		t.Fatalf("unexpected truncated frequencies %v", got)
	}
	if got := h.Frequencies(-1); !slices.Equal(got, []float64{4, 2}) {
		t.Fatalf("unexpected frequencies %v", got)
	}
}
