package source

import (
	"time"

	"github.com/okian/quizboard/pkg/logger"
)

// Option applies a configuration option to the FileSource.
type Option func(*FileSource)

// WithFormat forces the file format instead of inferring it from the extension.
func WithFormat(f Format) Option {
	return func(s *FileSource) {
		if f != "" {
			s.format = f
		}
	}
}

// WithSheet selects the worksheet read from XLSX files.
func WithSheet(sheet string) Option {
	return func(s *FileSource) {
		s.sheet = sheet
	}
}

// WithRetry sets the number of read attempts and the initial backoff delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(s *FileSource) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if delay > 0 {
			s.delay = delay
		}
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(l logger.Logger) Option {
	return func(s *FileSource) {
		if l != nil {
			s.logger = l
		}
	}
}
