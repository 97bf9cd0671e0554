// Package pipeline turns a parsed dataset into the leaderboard bundle:
// normalize, rank, derive ratios, then summarize and project the top entries.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/okian/quizboard/internal/domain/model"
	"github.com/okian/quizboard/internal/domain/normalize"
	"github.com/okian/quizboard/internal/domain/ranking"
	"github.com/okian/quizboard/internal/domain/scoring"
	"github.com/okian/quizboard/internal/domain/stats"
	"github.com/okian/quizboard/pkg/logger"
)

// DefaultTopN is the number of entries in the chart projection.
const DefaultTopN = 5

// Pipeline is stateless between runs and safe for concurrent use.
type Pipeline struct {
	normalizer     *normalize.Normalizer
	nonQuizColumns int
	topN           int
	now            func() time.Time
	logger         logger.Logger
}

// New creates a Pipeline with the default mapping, five non-quiz columns and a top five.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		nonQuizColumns: stats.DefaultNonQuizColumns,
		topN:           DefaultTopN,
		now:            time.Now,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.normalizer == nil {
		p.normalizer = normalize.New(normalize.WithLogger(p.logger))
	}
	return p
}

// Run computes the bundle for ds. It never fails; degraded cells are
// returned alongside and counted in Bundle.Diagnostics.
func (p *Pipeline) Run(ctx context.Context, ds model.Dataset) (model.Bundle, []normalize.Diagnostic) {
	entries, diags := p.normalizer.Normalize(ctx, ds)
	ranked := scoring.WithRatios(ranking.Rank(entries))

	bundle := model.Bundle{
		Entries:     ranked,
		Summary:     stats.Summarize(ranked, ds.ColumnCount(), p.nonQuizColumns),
		Top:         ranking.TopN(ranked, p.topN),
		Diagnostics: len(diags),
		GeneratedAt: p.now(),
	}

	if len(diags) > 0 {
		var missing, unparsable int
		for _, d := range diags {
			switch {
			case errors.Is(d, normalize.ErrMissingField):
				missing++
			case errors.Is(d, normalize.ErrUnparsableNumeric):
				unparsable++
			}
		}
		p.logger.Warn(ctx, "dataset has degraded cells",
			logger.Int("rows", len(ds.Rows)),
			logger.Int("missing", missing),
			logger.Int("unparsable", unparsable),
		)
	}
	return bundle, diags
}

// TopN returns the configured projection size.
func (p *Pipeline) TopN() int { return p.topN }
