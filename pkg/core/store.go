package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Store owns the vocabulary aggregate. All mutations go through it;
// every successful mutation overwrites the whole backing document.
//
// The store is safe for concurrent use within one process, but offers
// no cross-process coordination: it is bound to single-writer use per
// open document.
type Store struct {
	mu     sync.RWMutex
	repo   Repository
	vocab  Vocabulary
	logger *slog.Logger
}

// NewStore loads the vocabulary from the repository. A missing or
// never-written document yields an empty vocabulary.
func NewStore(ctx context.Context, repo Repository, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	return &Store{repo: repo, vocab: v, logger: logger}, nil
}

// Vocabulary returns a snapshot of the latest in-memory state
// (read-your-writes).
func (s *Store) Vocabulary() Vocabulary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocab.Clone()
}

// Entity resolves an entity type by id from the current state.
func (s *Store) Entity(id string) (Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocab.Entity(id)
}

// AddEntity appends an entity and persists. It fails with
// ErrDuplicateID if the id is already taken, leaving the vocabulary
// unchanged.
func (s *Store) AddEntity(ctx context.Context, e Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.vocab.Entity(e.ID); exists {
		return fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateID)
	}
	s.vocab.Entities = append(s.vocab.Entities, e)
	return s.persist(ctx)
}

// RemoveEntity removes an entity by id and persists. Removing an
// absent id is a documented no-op, not an error.
func (s *Store) RemoveEntity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.vocab.Entities[:0]
	for _, e := range s.vocab.Entities {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.vocab.Entities = kept
	return s.persist(ctx)
}

// AddRelation appends a relation and persists; duplicate ids are
// rejected with ErrDuplicateID.
func (s *Store) AddRelation(ctx context.Context, r Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.vocab.Relations {
		if existing.ID == r.ID {
			return fmt.Errorf("relation %q: %w", r.ID, ErrDuplicateID)
		}
	}
	s.vocab.Relations = append(s.vocab.Relations, r)
	return s.persist(ctx)
}

// RemoveRelation removes a relation by id and persists; absent ids are
// a no-op. Removal operates on the relations collection.
func (s *Store) RemoveRelation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.vocab.Relations[:0]
	for _, r := range s.vocab.Relations {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.vocab.Relations = kept
	return s.persist(ctx)
}

// AddTag appends a tag and persists. The exact string being present
// already is rejected with ErrTagExists.
func (s *Store) AddTag(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.vocab.Tags {
		if t == tag {
			return fmt.Errorf("tag %q: %w", tag, ErrTagExists)
		}
	}
	s.vocab.Tags = append(s.vocab.Tags, tag)
	return s.persist(ctx)
}

// RemoveTag removes a tag by value equality and persists; an absent
// tag is a no-op.
func (s *Store) RemoveTag(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.vocab.Tags[:0]
	for _, t := range s.vocab.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.vocab.Tags = kept
	return s.persist(ctx)
}

// Reload replaces the in-memory state with the persisted document.
// Used after an external writer modified the backing file.
func (s *Store) Reload(ctx context.Context) error {
	v, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload vocabulary: %w", err)
	}
	s.mu.Lock()
	s.vocab = v
	s.mu.Unlock()
	return nil
}

// Watch observes external changes to the backing document if the
// repository supports it.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, fmt.Errorf("repository does not support watching")
	}
	return w.Watch(ctx)
}

// persist writes the whole document. On failure the in-memory mutation
// is kept: the caller is informed and a retry re-persists the intended
// state rather than losing it. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.vocab); err != nil {
		s.logger.Error("vocabulary persist failed", "error", err)
		return fmt.Errorf("failed to persist vocabulary: %w", err)
	}
	return nil
}
