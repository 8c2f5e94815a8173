// Package annotation provides the externally owned annotation store
// the property engine collaborates with. The engine only ever reads
// one annotation at a time and writes it back whole.
package annotation

import (
	"context"
	"fmt"
	"sync"

	"github.com/dHumanities/immarkus/pkg/core"
)

// Store is the body-list CRUD surface consumed from the annotation
// layer.
type Store interface {
	// Annotation retrieves one annotation by id.
	Annotation(ctx context.Context, id string) (core.Annotation, error)

	// UpdateAnnotation replaces an annotation whole.
	UpdateAnnotation(ctx context.Context, a core.Annotation) error

	// DeleteBody removes a single body from its owning annotation.
	DeleteBody(ctx context.Context, body core.AnnotationBody) error
}

// MemStore is an in-memory Store, used by tests and as the working set
// behind the CLI.
type MemStore struct {
	mu          sync.RWMutex
	annotations map[string]core.Annotation
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{annotations: make(map[string]core.Annotation)}
}

// Put inserts or replaces an annotation without going through the
// update contract. Intended for seeding.
func (m *MemStore) Put(a core.Annotation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.annotations[a.ID] = a
}

// Annotation implements Store.
func (m *MemStore) Annotation(ctx context.Context, id string) (core.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.annotations[id]
	if !ok {
		return core.Annotation{}, fmt.Errorf("annotation %q: %w", id, core.ErrNotFound)
	}
	return a, nil
}

// UpdateAnnotation implements Store.
func (m *MemStore) UpdateAnnotation(ctx context.Context, a core.Annotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.annotations[a.ID]; !ok {
		return fmt.Errorf("annotation %q: %w", a.ID, core.ErrNotFound)
	}
	m.annotations[a.ID] = a
	return nil
}

// DeleteBody implements Store. Deleting a body from a missing
// annotation, or a body that is already gone, is a no-op.
func (m *MemStore) DeleteBody(ctx context.Context, body core.AnnotationBody) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.annotations[body.Annotation]
	if !ok {
		return nil
	}
	kept := a.Bodies[:0]
	for _, b := range a.Bodies {
		if b.ID != body.ID {
			kept = append(kept, b)
		}
	}
	a.Bodies = kept
	m.annotations[a.ID] = a
	return nil
}

var _ Store = (*MemStore)(nil)
