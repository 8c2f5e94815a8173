// Package platform is the composition root: it wires the vocabulary
// store to a storage adapter based on functional options.
package platform

import (
	"log/slog"

	"github.com/dHumanities/immarkus/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
)

// options holds the internal configuration for opening a vocabulary.
type options struct {
	adapter    string
	autoCreate bool
	repository core.Repository
	logger     *slog.Logger
}

// Option defines a functional option for configuring the vocabulary
// store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:    AdapterFS,
		autoCreate: false,
		repository: nil,
		logger:     nil,
	}
}

// WithAutoCreate writes an empty vocabulary document when none exists
// yet. Without it, a missing document is still readable (as empty)
// but nothing is created until the first mutation.
func WithAutoCreate(auto bool) Option {
	return func(o *options) {
		o.autoCreate = auto
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock,
// memory). If provided, the named adapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
