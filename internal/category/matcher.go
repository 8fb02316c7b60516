// Package category resolves free-text product categories into a platform's category
// vocabulary, optionally remembering confident matches in a mapping store.
package category

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

const (
	ConfidenceExact       = 1.0
	ConfidenceSubstring   = 0.8
	ConfidenceKeywordCap  = 0.7
	ConfidenceNoOverlap   = 0.3
	ConfidencePassThrough = 0.5
)

// Match is a category suggestion with its confidence in [0, 1].
type Match struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func isKeywordSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '&'
}

// FindBestMatch picks the candidate closest to source. Tiers are tried in order: exact
// caseless match, substring containment in either direction, then keyword overlap. With
// no candidates the source is passed through at medium confidence.
func FindBestMatch(source string, candidates []string) Match {
	if len(candidates) == 0 {
		return Match{Category: source, Confidence: ConfidencePassThrough}
	}

	src := fold(source)
	folded := make([]string, len(candidates))
	for i, c := range candidates {
		folded[i] = fold(c)
		if folded[i] == src {
			return Match{Category: c, Confidence: ConfidenceExact}
		}
	}

	for i, c := range folded {
		if strings.Contains(c, src) || strings.Contains(src, c) {
			return Match{Category: candidates[i], Confidence: ConfidenceSubstring}
		}
	}

	keywords := strings.FieldsFunc(src, isKeywordSeparator)
	best, bestScore := 0, 0
	for i, c := range folded {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(c, kw) {
				score += utf8.RuneCountInString(kw)
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	confidence := ConfidenceNoOverlap
	if bestScore > 0 {
		confidence = math.Min(ConfidenceKeywordCap, float64(bestScore)/float64(utf8.RuneCountInString(source)))
	}
	return Match{Category: candidates[best], Confidence: confidence}
}
