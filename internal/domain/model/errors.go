package model

import "errors"

// ErrNotFound reports a participant id absent from the leaderboard.
var ErrNotFound = errors.New("participant not found")
