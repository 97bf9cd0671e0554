// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and QUIZBOARD_ env vars over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// DataPath points at the CSV or XLSX export holding the quiz sheet.
	DataPath string `koanf:"data_path" validate:"required"`

	// DataFormat forces csv or xlsx; auto infers it from the extension.
	DataFormat string `koanf:"data_format" validate:"oneof=auto csv xlsx"`

	// DataSheet names the workbook sheet for XLSX sources. Empty means the first.
	DataSheet string `koanf:"data_sheet"`

	// NonQuizColumns is subtracted from the header width to count quizzes.
	NonQuizColumns int `koanf:"non_quiz_columns" validate:"gte=0"`

	// TopN sizes the top projection in a leaderboard bundle.
	TopN int `koanf:"top_n" validate:"gte=0"`

	// MaxLeaderboardLimit caps GET /leaderboard/top?n.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit" validate:"gt=0"`

	// RatioHighlightThreshold marks entries whose ratio exceeds it.
	RatioHighlightThreshold float64 `koanf:"ratio_highlight_threshold" validate:"gte=0"`

	// SourceRetryAttempts and SourceRetryDelayMS bound dataset read retries.
	SourceRetryAttempts uint `koanf:"source_retry_attempts" validate:"gte=1"`
	SourceRetryDelayMS  int  `koanf:"source_retry_delay_ms" validate:"gte=0"`

	// RateLimitRPS and RateLimitBurst shape the per-process request limiter.
	// A zero RPS disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=1"`

	// Column overrides for the logical fields. Empty keeps the built-in names.
	IDColumns            []string `koanf:"id_columns"`
	ParticipationColumns []string `koanf:"participation_columns"`
	ScoreColumns         []string `koanf:"score_columns"`
	ImageColumns         []string `koanf:"image_columns"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":9080",
		DataPath:                "data/leaderboard.csv",
		DataFormat:              "auto",
		NonQuizColumns:          5,
		TopN:                    5,
		MaxLeaderboardLimit:     100,
		RatioHighlightThreshold: 80,
		SourceRetryAttempts:     3,
		SourceRetryDelayMS:      100,
		RateLimitRPS:            50,
		RateLimitBurst:          100,
	}
}

// SourceRetryDelay returns SourceRetryDelayMS as a duration.
func (c *Config) SourceRetryDelay() time.Duration {
	return time.Duration(c.SourceRetryDelayMS) * time.Millisecond
}
