package model

import (
	"log/slog"

	"github.com/aretw0/markov/pkg/domain"
)

// Option configures graph construction.
type Option[S any] func(*config[S])

type config[S any] struct {
	logger *slog.Logger
	hooks  domain.BuildHooks
	hasher func(S) uint64
	equal  func(a, b S) bool
	limit  int
}

// WithLogger sets a structured logger for construction progress.
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(c *config[S]) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks[S any](hooks domain.BuildHooks) Option[S] {
	return func(c *config[S]) {
		c.hooks = hooks
	}
}

// WithHasher overrides the state hash. It must agree with equality: equal states must hash
// equally.
func WithHasher[S any](fn func(S) uint64) Option[S] {
	return func(c *config[S]) {
		c.hasher = fn
	}
}

// WithEqual overrides state equality.
func WithEqual[S any](fn func(a, b S) bool) Option[S] {
	return func(c *config[S]) {
		c.equal = fn
	}
}

// WithStateLimit makes Build panic with domain.ErrStateLimit once more than n states are
// discovered. Zero means unlimited.
func WithStateLimit[S any](n int) Option[S] {
	return func(c *config[S]) {
		c.limit = n
	}
}
