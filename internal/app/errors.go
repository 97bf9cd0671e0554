package service

import (
	"errors"

	"github.com/okian/quizboard/internal/domain/model"
)

// Sentinel errors returned by the service.
var (
	ErrNotFound    = model.ErrNotFound
	ErrNotStarted  = errors.New("service not started")
	ErrLoadDataset = errors.New("load dataset failed")
)
