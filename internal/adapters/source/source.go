// Package source reads the quiz sheet from disk and hands the pipeline a
// parsed, dynamically typed Dataset.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/pkg/logger"
	"github.com/okian/quizboard/pkg/metrics"
)

// Format names a dataset encoding.
type Format string

// Supported dataset formats.
const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Default retry settings. The sheet export replaces the file in place, so a
// read can briefly observe a missing or truncated file.
const (
	defaultAttempts = 3
	defaultDelay    = 100 * time.Millisecond
	maxDelay        = 2 * time.Second
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes r in the given format. sheet only applies to XLSX.
func Parse(r io.Reader, format Format, sheet string) (model.Dataset, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r, sheet)
	default:
		return model.Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FileSource loads a dataset file on every call; nothing is cached.
type FileSource struct {
	path     string
	format   Format
	sheet    string
	attempts uint
	delay    time.Duration
	logger   logger.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, opts ...Option) *FileSource {
	s := &FileSource{
		path:     path,
		format:   FormatAuto,
		attempts: defaultAttempts,
		delay:    defaultDelay,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the source reads.
func (s *FileSource) Path() string { return s.path }

// Load reads and parses the file, retrying with backoff on failure.
func (s *FileSource) Load(ctx context.Context) (model.Dataset, error) {
	format := s.format
	if format == FormatAuto || format == "" {
		f, err := FormatFromPath(s.path)
		if err != nil {
			return model.Dataset{}, err
		}
		format = f
	}

	var ds model.Dataset
	err := retry.Do(
		func() error {
			var err error
			ds, err = s.read(format)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.DelayType(retry.BackOffDelay),
		retry.Delay(s.delay),
		retry.MaxDelay(maxDelay),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordSourceRetry()
			s.logger.Warn(ctx, "dataset read failed; retrying",
				logger.String("path", s.path),
				logger.Int("attempt", int(n)+1),
				logger.Error(err),
			)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		metrics.RecordSourceLoadError()
		return model.Dataset{}, err
	}
	return ds, nil
}

func (s *FileSource) read(format Format) (model.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f, format, s.sheet)
}
