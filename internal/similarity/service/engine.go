package service

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"wordsim/internal/similarity/model"
)

const defaultBlockRows = 64

// Engine evaluates every unordered pair (i<j) of a token sequence and keeps the ones
// at or above MinMatch. Values are filtered as they are produced, so no n×n matrix
// is ever held: memory is the tokens plus the qualifying pairs.
type Engine struct {
	Sim       Func
	MinMatch  float64
	Workers   int
	BlockRows int            // rows per work unit; <=0 picks defaultBlockRows
	Progress  func(rows int) // called after each finished block, from any worker
}

// EngineResult holds qualifying pairs in row-major (i, then j) order.
type EngineResult struct {
	Pairs    []model.Pair
	Compared int64
	Workers  int
}

func (e *Engine) workers(blocks int) int {
	w := e.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > blocks {
		w = blocks
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Compute fans rows out to workers. A block of rows belongs to exactly one worker
// and its pairs go to the block's own slot, so workers share nothing mutable except
// the block counter. Slots are concatenated in order after every worker returned.
func (e *Engine) Compute(ctx context.Context, tokens []model.Token) (EngineResult, error) {
	n := len(tokens)
	sim := e.Sim
	if sim == nil {
		sim = Levenshtein
	}
	rowsPer := e.BlockRows
	if rowsPer <= 0 {
		rowsPer = defaultBlockRows
	}
	// the last row has no partner
	rows := max(n-1, 0)
	blocks := (rows + rowsPer - 1) / rowsPer
	workers := e.workers(blocks)

	slots := make([][]model.Pair, blocks)
	counts := make([]int64, workers)
	var next atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				b := int(next.Add(1) - 1)
				if b >= blocks {
					return nil
				}
				lo := b * rowsPer
				hi := min(lo+rowsPer, rows)
				slots[b] = e.block(tokens, lo, hi, sim, &counts[w])
				if e.Progress != nil {
					e.Progress(hi - lo)
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return EngineResult{}, err
	}

	res := EngineResult{Workers: workers}
	total := 0
	for _, s := range slots {
		total += len(s)
	}
	res.Pairs = make([]model.Pair, 0, total)
	for _, s := range slots {
		res.Pairs = append(res.Pairs, s...)
	}
	for _, c := range counts {
		res.Compared += c
	}
	return res, nil
}

// block compares rows [lo, hi) against every later token.
func (e *Engine) block(tokens []model.Token, lo, hi int, sim Func, compared *int64) []model.Pair {
	var out []model.Pair
	var cnt int64
	for i := lo; i < hi; i++ {
		a := tokens[i]
		for j := i + 1; j < len(tokens); j++ {
			b := tokens[j]
			v := sim(a.Text, b.Text)
			cnt++
			if v < e.MinMatch {
				continue
			}
			out = append(out, model.Pair{
				Similarity: v,
				I:          a.Index,
				TokenI:     a.Text,
				J:          b.Index,
				TokenJ:     b.Text,
				RawI:       a.Raw,
				RawJ:       b.Raw,
			})
		}
	}
	*compared += cnt
	return out
}
