package service

import (
	"github.com/okian/quizboard/internal/adapters/source"
	"github.com/okian/quizboard/internal/config"
	"github.com/okian/quizboard/internal/domain/normalize"
	"github.com/okian/quizboard/internal/domain/pipeline"
	"github.com/okian/quizboard/pkg/logger"
)

// MappingFromConfig returns the column overrides set in cfg. Fields with no
// override are left out so the normalizer keeps its defaults.
func MappingFromConfig(cfg *config.Config) normalize.Mapping {
	m := normalize.Mapping{}
	add := func(f normalize.Field, cols []string) {
		if len(cols) > 0 {
			m[f] = cols
		}
	}
	add(normalize.FieldID, cfg.IDColumns)
	add(normalize.FieldParticipation, cfg.ParticipationColumns)
	add(normalize.FieldScore, cfg.ScoreColumns)
	add(normalize.FieldImageURL, cfg.ImageColumns)
	return m
}

// PipelineFromConfig builds the leaderboard pipeline described by cfg.
func PipelineFromConfig(cfg *config.Config, l logger.Logger) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.WithNormalizer(normalize.New(
			normalize.WithMapping(MappingFromConfig(cfg)),
			normalize.WithLogger(l.Named("normalize")),
		)),
		pipeline.WithNonQuizColumns(cfg.NonQuizColumns),
		pipeline.WithTopN(cfg.TopN),
		pipeline.WithLogger(l.Named("pipeline")),
	)
}

// SourceFromConfig builds a file source for path using the format, sheet and
// retry settings in cfg.
func SourceFromConfig(cfg *config.Config, path string, l logger.Logger) *source.FileSource {
	return source.NewFileSource(path,
		source.WithFormat(source.Format(cfg.DataFormat)),
		source.WithSheet(cfg.DataSheet),
		source.WithRetry(cfg.SourceRetryAttempts, cfg.SourceRetryDelay()),
		source.WithLogger(l.Named("source")),
	)
}
