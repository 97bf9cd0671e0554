package service

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/okian/quizboard/internal/domain/pipeline"
	"github.com/okian/quizboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPipeline replaces the default leaderboard pipeline.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(s *Service) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithTracer sets the tracer used for per-request spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}
