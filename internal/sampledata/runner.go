package sampledata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/quizboard/pkg/logger"
)

// Run generates a sheet, writes it to cfg.OutputFile and, when cfg.BaseURL is
// set, verifies the server's leaderboard against it.
func Run(ctx context.Context, cfg *Config) error {
	start := time.Now()
	log := logger.Get()

	log.Info(ctx, "generating quiz sheet",
		logger.Int("participants", cfg.Participants),
		logger.Int("quizzes", cfg.Quizzes),
		logger.Int("dirtyEvery", cfg.DirtyEvery),
		logger.String("output", cfg.OutputFile),
	)

	ds, err := Generate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := WriteFile(cfg.OutputFile, ds, cfg.Sheet); err != nil {
		return fmt.Errorf("write %s: %w", cfg.OutputFile, err)
	}
	log.Info(ctx, "sheet written", logger.String("output", cfg.OutputFile), logger.Int("rows", len(ds.Rows)))

	if cfg.BaseURL != "" {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client := &http.Client{Timeout: timeout}
		if err := Verify(ctx, client, cfg.BaseURL, ds); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}

	log.Info(ctx, "done", logger.String("duration", time.Since(start).String()))
	return nil
}
