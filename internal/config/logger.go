package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger: human readable console output on out plus a rotated file when
// cfg.LogFile is set.
func SetupLogger(cfg Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}}
	if cfg.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	mw := zerolog.MultiLevelWriter(writers...)
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(mw).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
