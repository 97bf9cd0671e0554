package api

import (
	"github.com/okian/quizboard/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxLimit caps the n accepted by GET /leaderboard/top.
func WithMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// WithHighlightThreshold sets the ratio above which an entry is highlighted.
func WithHighlightThreshold(t float64) Option {
	return func(s *Server) {
		if t >= 0 {
			s.highlightThreshold = t
		}
	}
}

// WithRateLimit enables a process-wide token bucket. A non-positive rps
// leaves limiting off.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rateRPS = rps
		s.rateBurst = burst
	}
}

// WithLogger sets the logger used by middleware.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
