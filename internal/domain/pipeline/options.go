package pipeline

import (
	"time"

	"github.com/okian/quizboard/internal/domain/normalize"
	"github.com/okian/quizboard/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithNormalizer sets the record normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) {
		if n != nil {
			p.normalizer = n
		}
	}
}

// WithNonQuizColumns sets how many header columns are not quizzes.
func WithNonQuizColumns(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.nonQuizColumns = n
		}
	}
}

// WithTopN sets the size of the chart projection.
func WithTopN(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.topN = n
		}
	}
}

// WithClock overrides the time source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger for run summaries.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}
