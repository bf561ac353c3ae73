package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// reportError prints the one line a failed run leaves on stderr.
func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "interrupted")
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
