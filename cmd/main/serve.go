package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"wordsim/internal/config"
	serverhttp "wordsim/server/http"
)

func newServeCommand(configPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /similarity over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default HOST:PORT)")
	return cmd
}

// serve blocks until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg config.Config, addr string) error {
	logger := config.SetupLogger(cfg, nil)
	if addr == "" {
		addr = cfg.Addr()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           serverhttp.NewRouter(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", addr).Msg("server starting")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("listen")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("bye")
	return nil
}
