package immarkus

import (
	"context"
	"log/slog"

	"github.com/dHumanities/immarkus/internal/platform"
	"github.com/dHumanities/immarkus/pkg/core"
	"github.com/dHumanities/immarkus/pkg/form"
)

// --- Configuration ---

// Option defines a functional option for opening a vocabulary store.
type Option = platform.Option

// WithAutoCreate writes an empty vocabulary document when none exists.
func WithAutoCreate(auto bool) Option {
	return platform.WithAutoCreate(auto)
}

// WithAdapter selects the storage adapter by name ("fs" or "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// --- Factories ---

// Open opens the vocabulary store backing the given path. A directory
// path resolves to the default document (vocabulary.imarkus) inside
// it.
func Open(ctx context.Context, path string, opts ...Option) (*core.Store, error) {
	return platform.New(ctx, path, opts...)
}

// Init builds and initializes a repository without opening a store.
func Init(ctx context.Context, path string, opts ...Option) (core.Repository, error) {
	return platform.Init(ctx, path, opts...)
}

// NewSession opens a property edit session for one annotation against
// a vocabulary store.
func NewSession(a core.Annotation, store *core.Store, opts ...form.SessionOption) *form.Session {
	return form.NewSession(a, store, opts...)
}
