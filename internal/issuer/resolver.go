// Package issuer derives issuer identities from JSDA series labels and
// supports fuzzy lookup over them.
package issuer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"

	"CurveWatch/internal/model"
)

// Name extracts the issuer identity from a combined "issuer + series
// number" label: the longest run of non-digit runes. The digit runs
// are series/round numbers, in ASCII or full-width form depending on
// file vintage. An all-numeric label has no issuer and yields "".
func Name(seriesLabel string) string {
	var runs []string
	var current []rune
	for _, r := range strings.TrimSpace(seriesLabel) {
		// unicode.IsDigit covers full-width ０-９ as well as ASCII.
		if unicode.IsDigit(r) {
			if len(current) > 0 {
				runs = append(runs, string(current))
				current = nil
			}
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		runs = append(runs, string(current))
	}
	best, bestLen := "", 0
	for _, run := range runs {
		if n := utf8.RuneCountInString(run); n > bestLen {
			best, bestLen = run, n
		}
	}
	return strings.TrimSpace(best)
}

// Matches reports whether candidate contains query after both are
// folded to a canonical width and case. An empty query matches
// nothing: the caller should prompt for input instead of dumping the
// whole issuer list.
func Matches(query, candidate string) bool {
	q := fold(query)
	if q == "" {
		return false
	}
	return strings.Contains(fold(candidate), q)
}

func fold(s string) string {
	return strings.ToLower(width.Fold.String(strings.TrimSpace(s)))
}

// Candidates returns the sorted, de-duplicated issuer names present in
// a day's observations, excluding government records.
func Candidates(observations []model.Observation) []string {
	seen := make(map[string]struct{})
	for i := range observations {
		o := &observations[i]
		if o.IsGovernment() || o.IssuerName == "" {
			continue
		}
		seen[o.IssuerName] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Search filters Candidates by fuzzy match against query.
func Search(observations []model.Observation, query string) []string {
	var out []string
	for _, name := range Candidates(observations) {
		if Matches(query, name) {
			out = append(out, name)
		}
	}
	return out
}
