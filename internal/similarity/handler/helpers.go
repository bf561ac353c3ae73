package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"wordsim/internal/fileio"
	"wordsim/internal/similarity/service"
	"wordsim/internal/utils"
)

type errorBody struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// statusFor maps pipeline errors onto HTTP codes.
func statusFor(err error) int {
	var (
		el  *service.EmptyLineError
		ic  *service.InvalidCountError
		ie  *service.InvalidEncodingError
		tl  *service.TokenTooLongError
		mbe *http.MaxBytesError
		br  *badRequest
	)
	switch {
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.As(err, &el), errors.As(err, &ic), errors.As(err, &ie), errors.As(err, &tl),
		errors.Is(err, fileio.ErrEncoding):
		return http.StatusUnprocessableEntity
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUnknownMetric),
		errors.Is(err, service.ErrInvalidMinMatch),
		errors.Is(err, fileio.ErrUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorFor(err error) errorBody {
	b := errorBody{Error: err.Error()}
	var (
		el *service.EmptyLineError
		ie *service.InvalidEncodingError
		tl *service.TokenTooLongError
	)
	switch {
	case errors.As(err, &el):
		b.Line = el.Line
	case errors.As(err, &ie):
		b.Line = ie.Line
	case errors.As(err, &tl):
		b.Line = tl.Line
	}
	return b
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

// toPercent: absent -> def, unparsable -> ErrInvalidMinMatch. Range is checked later.
func toPercent(s string, def float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	p, ok := utils.ParsePercent(s)
	if !ok {
		return 0, service.ErrInvalidMinMatch
	}
	return p, nil
}
