// Command leaderboard computes leaderboard bundles for one or more quiz
// sheet exports and prints them as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	app "github.com/okian/quizboard/internal/app"
	"github.com/okian/quizboard/internal/config"
	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/pkg/logger"
)

// fileList collects repeated -f flags.
type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(v string) error { *f = append(*f, v); return nil }

// result is one file's output.
type result struct {
	Path   string       `json:"path"`
	Bundle model.Bundle `json:"bundle"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Stderr.WriteString("leaderboard: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("leaderboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var files fileList
	fs.Var(&files, "f", "Quiz sheet to process (repeatable); positional arguments are added too")
	format := fs.String("format", cfg.DataFormat, "Input format: auto, csv or xlsx")
	sheet := fs.String("sheet", cfg.DataSheet, "Worksheet for xlsx input")
	topN := fs.Int("top", cfg.TopN, "Size of the top projection")
	nonQuiz := fs.Int("non-quiz", cfg.NonQuizColumns, "Header columns that are not quizzes")
	concurrency := fs.Int("concurrency", 4, "Files processed at once")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format on stderr: text or json")
	verbose := fs.Bool("v", false, "Log degraded cells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	files = append(files, fs.Args()...)
	if len(files) == 0 {
		return errors.New("no input files; pass -f <file>")
	}

	cfg.DataFormat = *format
	cfg.DataSheet = *sheet
	cfg.TopN = *topN
	cfg.NonQuizColumns = *nonQuiz
	cfg.LogFormat = *logFormat
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	l, err := newStderrLogger(cfg, stderr)
	if err != nil {
		return err
	}
	pipe := app.PipelineFromConfig(cfg, l)

	results := make([]result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *concurrency))
	for i, path := range files {
		g.Go(func() error {
			ds, err := app.SourceFromConfig(cfg, path, l).Load(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			bundle, diags := pipe.Run(gctx, ds)
			if len(diags) > 0 {
				l.Info(gctx, "degraded cells", logger.String("path", path), logger.Int("count", len(diags)))
			}
			results[i] = result{Path: path, Bundle: bundle}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0].Bundle)
	}
	return enc.Encode(results)
}

func newStderrLogger(cfg *config.Config, stderr io.Writer) (logger.Logger, error) {
	l, err := logger.New(stderr, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, err
	}
	return l, nil
}
