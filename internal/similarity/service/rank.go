package service

import (
	"fmt"
	"math"
	"sort"

	"wordsim/internal/similarity/model"
)

const DefaultMinMatchPercent = 80.0

// MinMatchFromPercent converts the user-facing percentage into the fraction
// the engine compares against.
func MinMatchFromPercent(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMinMatch, p)
	}
	return p / 100, nil
}

// Rank sorts by similarity, highest first. The sort is stable so equal scores keep
// the row-major order they were produced in.
func Rank(pairs []model.Pair) {
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Similarity > pairs[b].Similarity
	})
}

// FormatPair renders one report line.
func FormatPair(p model.Pair, original bool) string {
	a, b := p.TokenI, p.TokenJ
	if original {
		a, b = p.RawI, p.RawJ
	}
	return fmt.Sprintf("Row %d: %s ~ Row %d: %s | Similarity: %05.2f%%", p.I, a, p.J, b, p.Similarity*100)
}

func Report(pairs []model.Pair, original bool) []string {
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = FormatPair(p, original)
	}
	return lines
}
