package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dHumanities/immarkus/pkg/adapters/fs"
	"github.com/dHumanities/immarkus/pkg/adapters/sqlite"
	"github.com/dHumanities/immarkus/pkg/core"
)

// Init builds and initializes the repository for a vocabulary path.
// A directory path resolves to the default document name inside it.
func Init(ctx context.Context, path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	resolved := ResolveDocumentPath(path)

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = fs.NewRepository(fs.Config{
			Path:       resolved,
			AutoCreate: o.autoCreate,
			Logger:     o.logger,
		})
	case AdapterSQLite:
		var err error
		repo, err = sqlite.NewRepository(resolved)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// New opens the vocabulary store at path.
func New(ctx context.Context, path string, opts ...Option) (*core.Store, error) {
	repo, err := Init(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewStore(ctx, repo, o.logger)
}

// ResolveDocumentPath maps a directory to the default vocabulary
// document inside it; file paths pass through unchanged.
func ResolveDocumentPath(path string) string {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, fs.DefaultFilename)
	}
	return path
}
