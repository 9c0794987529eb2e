// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
// Every mutation runs through the pipeline: persistence, deferred cache
// invalidation, and audit recording commit or roll back together.
package app

import (
	"log/slog"

	"github.com/linkmart/admin-api/internal/app/pipeline"
	"github.com/linkmart/admin-api/internal/platform/clock"
)

// service holds the collaborators shared by every entity service.
type service struct {
	pipe   *pipeline.Pipeline
	logger *slog.Logger
	clock  clock.Clock
}

// Option configures optional service collaborators.
type Option func(*service)

// WithClock replaces the system clock, used by tests to control entity
// timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *service) { s.clock = c }
}

func newService(pipe *pipeline.Pipeline, logger *slog.Logger, opts ...Option) service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := service{
		pipe:   pipe,
		logger: logger,
		clock:  clock.System{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
