package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"wordsim/internal/similarity/model"
)

const (
	DefaultMinWords = 2
	DefaultMaxWords = 500_000

	// MaxTokenRunes caps a normalized token; agnivade/levenshtein keeps its DP row
	// in uint16.
	MaxTokenRunes = 65535
)

// DefaultLimits bounds the token count. MaxWords is a wall-clock/memory budget for the
// quadratic comparison, not something the algorithm needs.
func DefaultLimits() model.Limits {
	return model.Limits{MinWords: DefaultMinWords, MaxWords: DefaultMaxWords}
}

// Normalize turns raw lines into the token sequence. It either returns every token or
// nothing: the first empty, non-UTF-8 or overlong line, or a bad count, aborts the
// whole call.
func Normalize(lines []string, lim model.Limits) ([]model.Token, error) {
	for i, l := range lines {
		if l == "" {
			return nil, &EmptyLineError{Line: i + 1}
		}
		if !utf8.ValidString(l) {
			return nil, &InvalidEncodingError{Line: i + 1}
		}
	}
	if n := len(lines); n < lim.MinWords || n > lim.MaxWords {
		return nil, &InvalidCountError{Count: n, Min: lim.MinWords, Max: lim.MaxWords}
	}

	// cases.Caser keeps state, one per call
	lower := cases.Lower(language.Und)
	tokens := make([]model.Token, len(lines))
	for i, l := range lines {
		text := canonical(l, lower)
		if len(text) > MaxTokenRunes {
			if n := utf8.RuneCountInString(text); n > MaxTokenRunes {
				return nil, &TokenTooLongError{Line: i + 1, Runes: n, Max: MaxTokenRunes}
			}
		}
		tokens[i] = model.Token{
			Index: i + 1,
			Text:  text,
			Raw:   l,
		}
	}
	return tokens, nil
}

// NFC -> lowercase -> drop every whitespace rune
func canonical(s string, lower cases.Caser) string {
	out := norm.NFC.String(s)
	out = lower.String(out)
	return stripSpaces(out)
}

func stripSpaces(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
