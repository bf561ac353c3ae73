package model

import "time"

// Token is one normalized input line. Index is the 1-based line number and is the
// only identity a token has: two lines with the same text stay two tokens.
type Token struct {
	Index int
	Text  string // normalized text used for comparison
	Raw   string // line as read
}

type Limits struct {
	MinWords int
	MaxWords int
}

type Options struct {
	Limits       Limits
	MinMatch     float64 // inclusive threshold, fraction in [0..1]
	Workers      int     // <=0: runtime.NumCPU()
	Metric       string  // levenshtein | damerau
	ShowOriginal bool    // render raw lines instead of normalized tokens
	Progress     func(rows int)
}

// Pair is a qualifying unordered pair in canonical form (I < J).
type Pair struct {
	Similarity float64 `json:"similarity"`
	I          int     `json:"i"`
	TokenI     string  `json:"token_i"`
	J          int     `json:"j"`
	TokenJ     string  `json:"token_j"`
	RawI       string  `json:"raw_i,omitempty"`
	RawJ       string  `json:"raw_j,omitempty"`
}

type Stats struct {
	Tokens   int           `json:"tokens"`
	Compared int64         `json:"compared"`
	Matched  int           `json:"matched"`
	Workers  int           `json:"workers"`
	Elapsed  time.Duration `json:"elapsed"`
}

type Result struct {
	Pairs []Pair `json:"pairs"`
	Stats Stats  `json:"stats"`
}
