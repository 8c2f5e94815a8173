// Package sqlite persists the vocabulary in a SQLite database. The
// persistence contract is the same as the file adapter's: every save
// overwrites the whole document, in a single transaction here.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dHumanities/immarkus/pkg/core"
)

// Repository implements core.Repository on a SQLite database.
type Repository struct {
	conn *sql.DB
}

// NewRepository opens (or creates) the database at path.
func NewRepository(path string) (*Repository, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Repository{conn: conn}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

// Initialize runs the schema migration.
func (r *Repository) Initialize(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entities (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL DEFAULT '',
			color TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			schema TEXT NOT NULL DEFAULT '[]',
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS relations (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			value TEXT PRIMARY KEY,
			position INTEGER NOT NULL
		);`,
	}

	for _, stmt := range statements {
		if _, err := r.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return nil
}

// Load reads the whole vocabulary. An empty database reads as the
// empty vocabulary, matching the missing-file behavior of the file
// adapter.
func (r *Repository) Load(ctx context.Context) (core.Vocabulary, error) {
	v := core.EmptyVocabulary()

	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, label, color, description, schema FROM entities ORDER BY position")
	if err != nil {
		return core.Vocabulary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var e core.Entity
		var schema string
		if err := rows.Scan(&e.ID, &e.Label, &e.Color, &e.Description, &schema); err != nil {
			return core.Vocabulary{}, err
		}
		if err := json.Unmarshal([]byte(schema), &e.Schema); err != nil {
			return core.Vocabulary{}, fmt.Errorf("invalid schema for entity %q: %w", e.ID, err)
		}
		v.Entities = append(v.Entities, e)
	}
	if err := rows.Err(); err != nil {
		return core.Vocabulary{}, err
	}

	relRows, err := r.conn.QueryContext(ctx,
		"SELECT id, source, target, label FROM relations ORDER BY position")
	if err != nil {
		return core.Vocabulary{}, err
	}
	defer relRows.Close()
	for relRows.Next() {
		var rel core.Relation
		if err := relRows.Scan(&rel.ID, &rel.Source, &rel.Target, &rel.Label); err != nil {
			return core.Vocabulary{}, err
		}
		v.Relations = append(v.Relations, rel)
	}
	if err := relRows.Err(); err != nil {
		return core.Vocabulary{}, err
	}

	tagRows, err := r.conn.QueryContext(ctx, "SELECT value FROM tags ORDER BY position")
	if err != nil {
		return core.Vocabulary{}, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tag string
		if err := tagRows.Scan(&tag); err != nil {
			return core.Vocabulary{}, err
		}
		v.Tags = append(v.Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return core.Vocabulary{}, err
	}

	return v, nil
}

// Save replaces the stored vocabulary with v in one transaction.
func (r *Repository) Save(ctx context.Context, v core.Vocabulary) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"entities", "relations", "tags"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for i, e := range v.Entities {
		schema, err := json.Marshal(e.Schema)
		if err != nil {
			return fmt.Errorf("failed to serialize schema for entity %q: %w", e.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO entities (id, label, color, description, schema, position) VALUES (?, ?, ?, ?, ?, ?)",
			e.ID, e.Label, e.Color, e.Description, string(schema), i,
		)
		if err != nil {
			return err
		}
	}

	for i, rel := range v.Relations {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO relations (id, source, target, label, position) VALUES (?, ?, ?, ?, ?)",
			rel.ID, rel.Source, rel.Target, rel.Label, i,
		)
		if err != nil {
			return err
		}
	}

	for i, tag := range v.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tags (value, position) VALUES (?, ?)", tag, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite-repository"
}

var _ core.Repository = (*Repository)(nil)
