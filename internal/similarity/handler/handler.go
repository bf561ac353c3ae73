package handler

import (
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wordsim/internal/config"
	"wordsim/internal/fileio"
	"wordsim/internal/similarity/model"
	"wordsim/internal/similarity/service"
)

type Response struct {
	Pairs    []model.Pair `json:"pairs"`
	Lines    []string     `json:"lines"`
	Stats    model.Stats  `json:"stats"`
	MinMatch float64      `json:"min_match"`
	Metric   string       `json:"metric"`
}

// Similarity serves POST /similarity. The input is either a multipart "file" field
// (txt/csv/xlsx/xls) or a plain text body with one token per line. Query or form
// values min_match (percent), metric, workers and show_original override cfg.
func Similarity(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := *zerolog.Ctx(r.Context())
		if log.GetLevel() == zerolog.Disabled {
			log = logger
		}
		defer r.Body.Close()

		lines, err := readInput(r, int64(cfg.MaxUploadMB)<<20)
		if err != nil {
			log.Warn().Err(err).Msg("read input")
			_ = writeJSON(w, statusFor(err), errorFor(err))
			return
		}

		var minMatch float64
		pct, err := toPercent(r.FormValue("min_match"), cfg.MinMatch)
		if err == nil {
			minMatch, err = service.MinMatchFromPercent(pct)
		}
		if err != nil {
			_ = writeJSON(w, http.StatusBadRequest, errorFor(err))
			return
		}

		metric := r.FormValue("metric")
		if metric == "" {
			metric = cfg.Metric
		}
		opt := model.Options{
			Limits:       model.Limits{MinWords: cfg.MinWords, MaxWords: cfg.MaxWords},
			MinMatch:     minMatch,
			Workers:      toInt(r.FormValue("workers"), cfg.Workers),
			Metric:       metric,
			ShowOriginal: toBool(r.FormValue("show_original"), false),
		}

		res, err := service.Run(log.WithContext(r.Context()), lines, opt)
		if err != nil {
			log.Warn().Err(err).Int("lines", len(lines)).Msg("similarity failed")
			_ = writeJSON(w, statusFor(err), errorFor(err))
			return
		}

		resp := Response{
			Pairs:    res.Pairs,
			Lines:    service.Report(res.Pairs, opt.ShowOriginal),
			Stats:    res.Stats,
			MinMatch: opt.MinMatch,
			Metric:   opt.Metric,
		}
		if resp.Pairs == nil {
			resp.Pairs = []model.Pair{}
		}
		if err := writeJSON(w, http.StatusOK, resp); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("tokens", res.Stats.Tokens).
			Int("matched", res.Stats.Matched).
			Dur("elapsed", time.Since(start)).
			Msg("similarity done")
	}
}

func readInput(r *http.Request, maxMemory int64) ([]string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "multipart/form-data" {
		return fileio.ReadLines(r.Body, "body.txt")
	}
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, err
		}
		return nil, &badRequest{msg: "bad multipart form: " + err.Error()}
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, &badRequest{msg: "missing file: " + err.Error()}
	}
	defer f.Close()
	return fileio.ReadLines(f, strings.TrimSpace(hdr.Filename))
}

type badRequest struct{ msg string }

func (e *badRequest) Error() string { return e.msg }
