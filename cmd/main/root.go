package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wordsim/internal/config"
	"wordsim/internal/fileio"
	"wordsim/internal/similarity/model"
	"wordsim/internal/similarity/service"
	"wordsim/internal/utils"
)

const version = "0.1.0"

type compareFlags struct {
	configPath   string
	minMatch     string
	metric       string
	workers      int
	minWords     int
	maxWords     int
	showOriginal bool
	preview      int
	noProgress   bool
}

func newRootCommand() *cobra.Command {
	var f compareFlags

	rootCmd := &cobra.Command{
		Use:           "wordsim INPUT OUTPUT",
		Short:         "Calculates similarity percentages between word pairs",
		Long:          "Compares every pair of lines in INPUT and writes the pairs at or above --min-match to OUTPUT, most similar first.",
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], &f)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "Configuration file path (TOML)")
	flags := rootCmd.Flags()
	flags.StringVarP(&f.minMatch, "min-match", "m", "80", "Minimum match percentage")
	flags.StringVar(&f.metric, "metric", "", "Similarity metric: levenshtein or damerau")
	flags.IntVarP(&f.workers, "workers", "w", 0, "Worker goroutines (0: one per CPU)")
	flags.IntVar(&f.minWords, "min-words", 0, "Minimum number of input lines")
	flags.IntVar(&f.maxWords, "max-words", 0, "Maximum number of input lines")
	flags.BoolVar(&f.showOriginal, "show-original", false, "Write input lines as read instead of normalized tokens")
	flags.IntVar(&f.preview, "preview", 0, "Print the N most similar pairs as a table")
	flags.BoolVar(&f.noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(newServeCommand(&f.configPath))
	return rootCmd
}

// loadConfig merges the config file/env with flags the user actually set.
func loadConfig(cmd *cobra.Command, f *compareFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("min-match") {
		p, ok := utils.ParsePercent(f.minMatch)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", service.ErrInvalidMinMatch, f.minMatch)
		}
		cfg.MinMatch = p
	}
	if changed("metric") {
		cfg.Metric = f.metric
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("min-words") {
		cfg.MinWords = f.minWords
	}
	if changed("max-words") {
		cfg.MaxWords = f.maxWords
	}
	return cfg, cfg.Validate()
}

func runCompare(cmd *cobra.Command, input, output string, f *compareFlags) error {
	start := time.Now()

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	minMatch, err := service.MinMatchFromPercent(cfg.MinMatch)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg, cmd.ErrOrStderr()).With().
		Str("run_id", uuid.NewString()).
		Logger()
	ctx := logger.WithContext(cmd.Context())

	lines, err := fileio.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debug().Str("input", input).Int("lines", len(lines)).Msg("input read")

	opt := model.Options{
		Limits:       model.Limits{MinWords: cfg.MinWords, MaxWords: cfg.MaxWords},
		MinMatch:     minMatch,
		Workers:      cfg.Workers,
		Metric:       cfg.Metric,
		ShowOriginal: f.showOriginal,
	}

	bar := newProgress(cmd.ErrOrStderr(), len(lines)-1, !f.noProgress)
	opt.Progress = bar.add

	res, err := service.Run(ctx, lines, opt)
	if err != nil {
		bar.abort()
		return err
	}
	bar.finish()

	if err := fileio.WriteReport(output, service.Report(res.Pairs, opt.ShowOriginal)); err != nil {
		return err
	}
	logger.Info().
		Str("output", output).
		Int("tokens", res.Stats.Tokens).
		Int("pairs", res.Stats.Matched).
		Int("workers", res.Stats.Workers).
		Msg("report written")

	out := cmd.OutOrStdout()
	if f.preview > 0 && len(res.Pairs) > 0 {
		fmt.Fprintln(out, renderPreview(res.Pairs, f.preview, opt.ShowOriginal))
	}
	fmt.Fprintf(out, "Time elapsed: %v\n", time.Since(start))
	return nil
}
