// Package sampledata generates synthetic quiz sheets and checks a running
// quizboard server against an independently computed ranking.
package sampledata

import (
	"errors"
	"time"
)

// Default generator settings.
const (
	DefaultParticipants = 200
	DefaultQuizzes      = 10
	DefaultTimeout      = 10 * time.Second
)

// Config holds configuration for a generation run.
type Config struct {
	Participants int           // Number of rows to generate
	Quizzes      int           // Number of quiz columns
	DirtyEvery   int           // Every n-th row gets a degraded cell; 0 disables
	Seed         int64         // Non-zero makes the output reproducible
	OutputFile   string        // .csv or .xlsx destination
	Sheet        string        // Worksheet name for .xlsx output
	BaseURL      string        // When set, the server at this URL is verified
	Timeout      time.Duration // HTTP request timeout
}

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("invalid generator config")
	ErrMismatch      = errors.New("leaderboard mismatch")
)

func (c *Config) validate() error {
	switch {
	case c.Participants < 0:
		return errors.Join(ErrInvalidConfig, errors.New("participants must be >= 0"))
	case c.Quizzes < 0:
		return errors.Join(ErrInvalidConfig, errors.New("quizzes must be >= 0"))
	case c.DirtyEvery < 0:
		return errors.Join(ErrInvalidConfig, errors.New("dirty-every must be >= 0"))
	}
	return nil
}
