package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"wordsim/internal/similarity/service"
)

// Config maps one to one onto TOML keys, env vars and CLI flags.
type Config struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
	LogLevel     string   `toml:"log_level"`
	LogFile      string   `toml:"log_file"` // "" disables the rotating file
	MaxUploadMB  int      `toml:"max_upload_mb"`

	MinWords int     `toml:"min_words"`
	MaxWords int     `toml:"max_words"`
	MinMatch float64 `toml:"min_match"` // percent
	Workers  int     `toml:"workers"`   // 0: one per CPU
	Metric   string  `toml:"metric"`
}

func Default() Config {
	lim := service.DefaultLimits()
	return Config{
		Host:         "127.0.0.1",
		Port:         8082,
		AllowOrigins: []string{"*"},
		LogLevel:     "info",
		MaxUploadMB:  256,
		MinWords:     lim.MinWords,
		MaxWords:     lim.MaxWords,
		MinMatch:     service.DefaultMinMatchPercent,
		Metric:       service.MetricLevenshtein,
	}
}

// Load applies defaults, then the TOML file at path (if any), then the environment.
// An empty path falls back to $WORDSIM_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("WORDSIM_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config env: %w", err)
	}
	return cfg, cfg.Validate()
}

// applyEnv overrides c from the environment. Unset or empty vars keep the current
// value; set but unparsable ones are errors.
func applyEnv(c *Config) error {
	var errs []error
	intVar := func(k string, p *int) {
		v, ok, err := getenvInt(k)
		switch {
		case err != nil:
			errs = append(errs, err)
		case ok:
			*p = v
		}
	}

	c.Host = getenv("HOST", c.Host)
	intVar("PORT", &c.Port)
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.AllowOrigins = strings.Split(v, ",")
	}
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getenv("LOG_FILE", c.LogFile)
	intVar("MAX_UPLOAD_MB", &c.MaxUploadMB)
	intVar("MIN_WORDS", &c.MinWords)
	intVar("MAX_WORDS", &c.MaxWords)
	if v := os.Getenv("MIN_MATCH"); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("MIN_MATCH=%q is not a number", v))
		} else {
			c.MinMatch = f
		}
	}
	intVar("WORKERS", &c.Workers)
	c.Metric = getenv("METRIC", c.Metric)
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	if c.MinWords < 0 || c.MaxWords < c.MinWords {
		errs = append(errs, fmt.Errorf("word limits [%d, %d] are invalid", c.MinWords, c.MaxWords))
	}
	if c.MinMatch < 0 || c.MinMatch > 100 {
		errs = append(errs, fmt.Errorf("min_match %v is outside [0, 100]", c.MinMatch))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is invalid", c.Port))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("max_upload_mb must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string) (int, bool, error) {
	s := os.Getenv(k)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false, fmt.Errorf("%s=%q is not an integer", k, s)
	}
	return v, true, nil
}
