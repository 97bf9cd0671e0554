package normalize

import "github.com/okian/quizboard/pkg/logger"

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithMapping replaces the field-mapping table. Fields absent from m keep
// their default candidates.
func WithMapping(m Mapping) Option {
	return func(n *Normalizer) {
		for field, candidates := range m {
			if len(candidates) > 0 {
				n.mapping[field] = append([]string(nil), candidates...)
			}
		}
	}
}

// WithLogger sets the logger used to report degraded cells.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}
