package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMetric   = errors.New("unknown similarity metric")
	ErrInvalidMinMatch = errors.New("min match must be between 0 and 100 percent")
)

// EmptyLineError reports a literally empty input line (1-based).
type EmptyLineError struct {
	Line int
}

func (e *EmptyLineError) Error() string {
	return fmt.Sprintf("empty lines are not allowed in the input (line %d)", e.Line)
}

// InvalidCountError reports a token count outside [Min, Max].
type InvalidCountError struct {
	Count int
	Min   int
	Max   int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("invalid number of words: %d. The input must contain between %d and %d words",
		e.Count, e.Min, e.Max)
}

// InvalidEncodingError reports a line that is not valid UTF-8.
type InvalidEncodingError struct {
	Line int
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("line %d is not valid UTF-8 text", e.Line)
}

// TokenTooLongError reports a normalized token longer than the distance metrics handle.
type TokenTooLongError struct {
	Line  int
	Runes int
	Max   int
}

func (e *TokenTooLongError) Error() string {
	return fmt.Sprintf("line %d is too long: %d characters, at most %d are allowed", e.Line, e.Runes, e.Max)
}
