package core

import "context"

// Repository defines the contract for persisting the vocabulary
// document. Adhering to this interface keeps the store independent of
// the storage mechanism (JSON file, SQLite, memory).
type Repository interface {
	// Initialize ensures the underlying storage is ready (create
	// directories, run migrations).
	Initialize(ctx context.Context) error

	// Load reads the whole document. A missing document is not an
	// error: implementations return EmptyVocabulary() in that case.
	Load(ctx context.Context) (Vocabulary, error)

	// Save overwrites the whole document. There are no partial or
	// incremental writes.
	Save(ctx context.Context, v Vocabulary) error
}

// Watchable is implemented by repositories that can observe external
// changes to the backing document. There is no cross-process locking;
// concurrent writers race and the last one wins.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
