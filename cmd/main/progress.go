package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// progress counts compared rows. It is a no-op unless w is a terminal.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(w io.Writer, rows int, enabled bool) *progress {
	if !enabled || rows <= 0 || !isTerminal(w) {
		return &progress{}
	}
	bar := progressbar.NewOptions64(int64(rows),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("comparing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerHead:    ">",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
	return &progress{bar: bar}
}

// add is handed to the engine and called from its workers; the bar locks internally.
func (p *progress) add(rows int) {
	if p.bar != nil {
		_ = p.bar.Add(rows)
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func (p *progress) abort() {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
