// Package fs persists the vocabulary as a single document on the
// filesystem. Every save is a full-document overwrite through an
// atomic temp-file rename; a missing document reads as an empty
// vocabulary.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dHumanities/immarkus/internal/atomicfile"
	"github.com/dHumanities/immarkus/pkg/core"
)

// DefaultFilename is the vocabulary document name used when a caller
// hands over a directory instead of a file path.
const DefaultFilename = "vocabulary.imarkus"

// Config holds the configuration for the filesystem repository.
type Config struct {
	// Path is the full path of the vocabulary document.
	Path string

	// AutoCreate writes an empty document on Initialize when none
	// exists yet.
	AutoCreate bool

	Logger *slog.Logger

	// ErrorHandler receives watcher errors that cannot be returned to
	// a caller. Optional.
	ErrorHandler func(error)
}

// Repository implements core.Repository on a single JSON (or YAML)
// document.
type Repository struct {
	Path   string
	config Config

	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// Initialize ensures the parent directory exists and, with AutoCreate,
// that an empty document is present.
func (r *Repository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if !r.config.AutoCreate {
		return nil
	}
	if _, err := os.Stat(r.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return r.Save(ctx, core.EmptyVocabulary())
}

// Load reads the whole document. Absence is not an error; it reads as
// the empty vocabulary.
func (r *Repository) Load(ctx context.Context) (core.Vocabulary, error) {
	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		return core.EmptyVocabulary(), nil
	}
	if err != nil {
		return core.Vocabulary{}, fmt.Errorf("failed to read vocabulary document: %w", err)
	}

	v, err := r.serializer().Unmarshal(data)
	if err != nil {
		return core.Vocabulary{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(r.Path), err)
	}
	return normalize(v), nil
}

// Save overwrites the whole document atomically.
func (r *Repository) Save(ctx context.Context, v core.Vocabulary) error {
	data, err := r.serializer().Marshal(normalize(v))
	if err != nil {
		return fmt.Errorf("failed to serialize vocabulary: %w", err)
	}
	if err := atomicfile.WriteFile(r.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write vocabulary document: %w", err)
	}
	return nil
}

// Watch observes external writes to the backing document. Events are
// debounced; the caller typically reacts by reloading the store. The
// channel closes when ctx is cancelled.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(r, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

// serializer picks the codec by file extension, defaulting to JSON.
func (r *Repository) serializer() Serializer {
	ext := strings.ToLower(filepath.Ext(r.Path))
	if s, ok := r.serializers[ext]; ok {
		return s
	}
	return r.serializers[".json"]
}

// normalize replaces nil collections so the document always carries
// the three top-level keys.
func normalize(v core.Vocabulary) core.Vocabulary {
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.Entities == nil {
		v.Entities = []core.Entity{}
	}
	if v.Relations == nil {
		v.Relations = []core.Relation{}
	}
	return v
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
