package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Polish national characters and the plain letters they fold to.
var nationalChars = map[rune]rune{
	'ą': 'a', 'ć': 'c', 'ę': 'e', 'ł': 'l', 'ń': 'n', 'ó': 'o', 'ś': 's', 'ź': 'z', 'ż': 'z',
	'Ą': 'A', 'Ć': 'C', 'Ę': 'E', 'Ł': 'L', 'Ń': 'N', 'Ó': 'O', 'Ś': 'S', 'Ź': 'Z', 'Ż': 'Z',
}

var asciiFold = runes.Map(func(r rune) rune {
	if plain, ok := nationalChars[r]; ok {
		return plain
	}
	return r
})

type Options struct {
	// FoldCase lower-cases answers (Polish rules) before they are compared.
	FoldCase bool
}

// Tokens runs the full normalization: Clean followed by NormalizeNationalChars.
func Tokens(tokens []*string, opts Options) []*string {
	return NormalizeNationalChars(Clean(tokens, opts))
}

// Clean drops answers that are blank after trimming and tidies the rest.
// Missing answers (nil) are kept so the histogram stage can discard them.
func Clean(tokens []*string, opts Options) []*string {
	var lower cases.Caser
	if opts.FoldCase {
		lower = cases.Lower(language.Polish)
	}

	out := make([]*string, 0, len(tokens))
	for _, t := range tokens {
		if t == nil {
			out = append(out, nil)
			continue
		}
		cleaned := strings.Join(strings.Fields(*t), " ")
		if cleaned == "" {
			continue
		}
		if opts.FoldCase {
			cleaned = lower.String(cleaned)
		}
		out = append(out, &cleaned)
	}
	return out
}

// NormalizeNationalChars maps every token to the spelling of its ASCII-folded
// class that carries the most national characters. The first spelling seen wins
// a tie.
func NormalizeNationalChars(tokens []*string) []*string {
	best := map[string]string{}
	bestCount := map[string]int{}
	for _, t := range tokens {
		if t == nil {
			continue
		}
		key := ASCIIForm(*t)
		n := CountNational(*t)
		if _, ok := best[key]; !ok || n > bestCount[key] {
			best[key] = *t
			bestCount[key] = n
		}
	}

	out := make([]*string, len(tokens))
	for i, t := range tokens {
		if t == nil {
			continue
		}
		form := best[ASCIIForm(*t)]
		out[i] = &form
	}
	return out
}

// ASCIIForm replaces national characters with their plain counterparts.
func ASCIIForm(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		return s
	}
	return folded
}

// CountNational counts lower-case national characters only; a capital such as
// 'Ż' does not make a spelling richer.
func CountNational(s string) int {
	n := 0
	for _, r := range s {
		if _, ok := nationalChars[r]; ok && unicode.IsLower(r) {
			n++
		}
	}
	return n
}
