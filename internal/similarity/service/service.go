package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"wordsim/internal/similarity/model"
)

// Run is the whole pipeline: normalize, compare and threshold every pair, rank.
// Nothing is compared when the input is rejected.
func Run(ctx context.Context, lines []string, opt model.Options) (model.Result, error) {
	start := time.Now()

	tokens, err := Normalize(lines, opt.Limits)
	if err != nil {
		return model.Result{}, err
	}
	sim, err := Metric(opt.Metric)
	if err != nil {
		return model.Result{}, err
	}

	eng := &Engine{
		Sim:      sim,
		MinMatch: opt.MinMatch,
		Workers:  opt.Workers,
		Progress: opt.Progress,
	}
	res, err := eng.Compute(ctx, tokens)
	if err != nil {
		return model.Result{}, err
	}

	pairs := res.Pairs
	Rank(pairs)

	stats := model.Stats{
		Tokens:   len(tokens),
		Compared: res.Compared,
		Matched:  len(pairs),
		Workers:  res.Workers,
		Elapsed:  time.Since(start),
	}
	log.Ctx(ctx).Debug().
		Int("tokens", stats.Tokens).
		Int64("compared", stats.Compared).
		Int("matched", stats.Matched).
		Int("workers", stats.Workers).
		Float64("min_match", opt.MinMatch).
		Str("metric", opt.Metric).
		Dur("elapsed", stats.Elapsed).
		Msg("similarity done")

	return model.Result{Pairs: pairs, Stats: stats}, nil
}
