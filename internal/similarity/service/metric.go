package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Func scores two tokens in [0..1]. Implementations must give f(a,a)=1 and
// f(a,b)=f(b,a), and must be safe for concurrent use.
type Func func(a, b string) float64

const (
	MetricLevenshtein = "levenshtein"
	MetricDamerau     = "damerau"
)

// Metric resolves a metric by name; "" selects levenshtein.
func Metric(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MetricLevenshtein:
		return Levenshtein, nil
	case MetricDamerau, "damerau-levenshtein", "osa":
		return Damerau, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// Levenshtein is the normalized Levenshtein similarity (L-d)/L with L the longer rune length.
func Levenshtein(a, b string) float64 {
	return normalized(a, b, levenshteinDistance)
}

// Damerau is the normalized optimal-string-alignment similarity.
func Damerau(a, b string) float64 {
	return normalized(a, b, damerauLevenshtein)
}

func normalized(a, b string, dist func(a, b string) int) float64 {
	if a == b {
		return 1
	}
	m := utf8.RuneCountInString(a)
	if mb := utf8.RuneCountInString(b); mb > m {
		m = mb
	}
	if m == 0 {
		return 1
	}
	d := dist(a, b)
	// (m-d)/m rather than 1-d/m: exact ratios like 8/10 must compare equal to 80/100
	return float64(m-d) / float64(m)
}

// levenshteinDistance defers to agnivade/levenshtein, whose uint16 row overflows
// past MaxTokenRunes. Byte length bounds rune count, so short inputs skip the fallback.
func levenshteinDistance(a, b string) int {
	if len(a) <= MaxTokenRunes && len(b) <= MaxTokenRunes {
		return levenshtein.ComputeDistance(a, b)
	}
	return wideLevenshtein(a, b)
}

// wideLevenshtein is the two-row Levenshtein distance with int cells.
func wideLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
