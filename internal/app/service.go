// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/internal/domain/normalize"
	"github.com/okian/quizboard/internal/domain/pipeline"
	"github.com/okian/quizboard/internal/domain/ranking"
	"github.com/okian/quizboard/pkg/logger"
	"github.com/okian/quizboard/pkg/metrics"
)

const tracerName = "github.com/okian/quizboard/internal/app"

// Loader supplies the current dataset. Implementations must be safe for
// concurrent use.
type Loader interface {
	Load(ctx context.Context) (model.Dataset, error)
}

// Service computes the leaderboard from the loader on every request.
type Service struct {
	mu sync.RWMutex

	source   Loader
	pipeline *pipeline.Pipeline
	tracer   trace.Tracer
	logger   logger.Logger

	// State
	started     bool
	runs        int64
	failures    int64
	lastRunAt   time.Time
	lastEntries int
	lastDiags   int
}

// New constructs a Service reading from source.
func New(source Loader, opts ...Option) *Service {
	s := &Service{
		source:   source,
		pipeline: pipeline.New(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the service ready and performs a warm-up load. A failing
// warm-up is logged but does not stop the service, since the export may
// appear later.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: no dataset source", ErrLoadDataset)
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting leaderboard service...")
	bundle, err := s.Leaderboard(ctx)
	if err != nil {
		s.logger.Warn(ctx, "warm-up load failed", logger.Error(err))
		return nil
	}
	s.logger.Info(ctx, "leaderboard service started",
		logger.Int("participants", bundle.Summary.TotalParticipants),
		logger.Int("quizzes", bundle.Summary.TotalQuizzes),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// Leaderboard loads the dataset and runs the full pipeline.
func (s *Service) Leaderboard(ctx context.Context) (model.Bundle, error) {
	ctx, span := s.tracer.Start(ctx, "service.Leaderboard")
	defer span.End()

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return model.Bundle{}, ErrNotStarted
	}

	start := time.Now()
	ds, err := s.source.Load(ctx)
	if err != nil {
		s.recordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "load dataset")
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrLoadDataset, err)
	}

	bundle, diags := s.pipeline.Run(ctx, ds)
	elapsed := time.Since(start)

	for _, d := range diags {
		metrics.RecordDegradedCell(string(d.Field), diagnosticKind(d))
	}
	metrics.RecordPipelineRun(float64(elapsed.Microseconds()) / 1000)
	metrics.UpdateLeaderboardSize(bundle.Summary.TotalParticipants, bundle.Summary.TotalQuizzes)

	span.SetAttributes(
		attribute.Int("leaderboard.rows", len(ds.Rows)),
		attribute.Int("leaderboard.participants", bundle.Summary.TotalParticipants),
		attribute.Int("leaderboard.diagnostics", len(diags)),
	)

	s.mu.Lock()
	s.runs++
	s.lastRunAt = bundle.GeneratedAt
	s.lastEntries = len(bundle.Entries)
	s.lastDiags = len(diags)
	s.mu.Unlock()

	return bundle, nil
}

// TopN returns the first n ranked entries. n is clamped to [0, participants].
func (s *Service) TopN(ctx context.Context, n int) ([]model.TopEntry, error) {
	bundle, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.TopN(bundle.Entries, n), nil
}

// Standing returns the first entry with id together with the summary of the
// same computation, so both come from one dataset snapshot.
func (s *Service) Standing(ctx context.Context, id string) (model.Entry, model.Summary, error) {
	bundle, err := s.Leaderboard(ctx)
	if err != nil {
		return model.Entry{}, model.Summary{}, err
	}
	for _, e := range bundle.Entries {
		if e.ID == id {
			return e, bundle.Summary, nil
		}
	}
	return model.Entry{}, model.Summary{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Summary returns the aggregate statistics of the current dataset.
func (s *Service) Summary(ctx context.Context) (model.Summary, error) {
	bundle, err := s.Leaderboard(ctx)
	if err != nil {
		return model.Summary{}, err
	}
	return bundle.Summary, nil
}

// DefaultTopN is the configured size of the top projection.
func (s *Service) DefaultTopN() int { return s.pipeline.TopN() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"runs":     s.runs,
		"failures": s.failures,
		"topN":     s.pipeline.TopN(),
	}
	if s.runs > 0 {
		stats["lastRunAt"] = s.lastRunAt
		stats["lastEntries"] = s.lastEntries
		stats["lastDiagnostics"] = s.lastDiags
	}
	return stats
}

func (s *Service) recordFailure() {
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()
}

func diagnosticKind(d normalize.Diagnostic) string {
	switch {
	case errors.Is(d, normalize.ErrMissingField):
		return "missing_field"
	case errors.Is(d, normalize.ErrUnparsableNumeric):
		return "unparsable_numeric"
	default:
		return "unknown"
	}
}
