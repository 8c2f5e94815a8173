package annotation

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dHumanities/immarkus/internal/atomicfile"
	"github.com/dHumanities/immarkus/pkg/core"
)

// Suffix is the sidecar extension: annotations for image.jpg live in
// image.jpg.annotations.json next to the image.
const Suffix = ".annotations.json"

// Document is the on-disk shape of one sidecar file.
type Document struct {
	Annotations []core.Annotation `json:"annotations"`
}

// FileStore manages per-image sidecar annotation documents under one
// root directory.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at dir. The directory must
// exist.
func NewFileStore(dir string) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("annotation root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("annotation root is not a directory: %s", dir)
	}
	return &FileStore{root: dir}, nil
}

// Files returns the sidecar documents matching a doublestar pattern,
// as slash-separated paths relative to the root.
func (f *FileStore) Files(ctx context.Context, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	var matches []string
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Read loads one sidecar document. A missing file yields an empty
// document, mirroring how the vocabulary treats a missing backing
// file.
func (f *FileStore) Read(ctx context.Context, rel string) (Document, error) {
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return Document{Annotations: []core.Annotation{}}, nil
	}
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse %s: %w", rel, err)
	}
	return doc, nil
}

// Write overwrites one sidecar document atomically.
func (f *FileStore) Write(ctx context.Context, rel string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", rel, err)
	}
	full := filepath.Join(f.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	return atomicfile.WriteFile(full, data, 0644)
}
