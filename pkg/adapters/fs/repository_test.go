package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dHumanities/immarkus/pkg/adapters/fs"
	"github.com/dHumanities/immarkus/pkg/core"
)

func testVocabulary() core.Vocabulary {
	min, max := 0.0, 120.0
	return core.Vocabulary{
		Tags: []string{"verified", "draft"},
		Entities: []core.Entity{
			{
				ID: "person", Label: "Person", Color: "#ff0000",
				Schema: []core.PropertyDefinition{
					{Type: core.PropertyText, Name: "Name", Required: true},
					{Type: core.PropertyNumber, Name: "Age", Min: &min, Max: &max},
					{Type: core.PropertyEnum, Name: "Dynasty", Values: []string{"Ming", "Qing"}},
					{Type: core.PropertyExternalAuthority, Name: "Wikidata",
						Authorities: []core.AuthoritySource{
							{Name: "Wikidata", URLPattern: "https://www.wikidata.org/wiki/{id}"},
						}},
				},
			},
			{ID: "place", Label: "Place"},
		},
		Relations: []core.Relation{
			{ID: "r1", Source: "person", Target: "place", Label: "born in"},
		},
	}
}

func TestRepository_LoadMissingDocument(t *testing.T) {
	repo := fs.NewRepository(fs.Config{
		Path: filepath.Join(t.TempDir(), fs.DefaultFilename),
	})

	v, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, v.Entities)
	assert.Empty(t, v.Relations)
	assert.Empty(t, v.Tags)
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), fs.DefaultFilename)
	repo := fs.NewRepository(fs.Config{Path: path})

	want := testVocabulary()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp files left behind by the atomic write.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, fs.DefaultFilename, entries[0].Name())
}

func TestRepository_SaveOverwritesWholeDocument(t *testing.T) {
	ctx := context.Background()
	repo := fs.NewRepository(fs.Config{
		Path: filepath.Join(t.TempDir(), fs.DefaultFilename),
	})

	require.NoError(t, repo.Save(ctx, testVocabulary()))
	require.NoError(t, repo.Save(ctx, core.Vocabulary{Tags: []string{"only"}}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, got.Tags)
	assert.Empty(t, got.Entities, "earlier entities must not survive the overwrite")
}

func TestRepository_InitializeAutoCreate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", fs.DefaultFilename)
	repo := fs.NewRepository(fs.Config{Path: path, AutoCreate: true})

	require.NoError(t, repo.Initialize(ctx))
	_, err := os.Stat(path)
	require.NoError(t, err, "AutoCreate must write an empty document")

	// Initialize again must not clobber existing content.
	require.NoError(t, repo.Save(ctx, testVocabulary()))
	require.NoError(t, repo.Initialize(ctx))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Entities, 2)
}

func TestRepository_YAMLDocument(t *testing.T) {
	ctx := context.Background()
	repo := fs.NewRepository(fs.Config{
		Path: filepath.Join(t.TempDir(), "vocabulary.yaml"),
	})

	want := testVocabulary()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRepository_LoadCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), fs.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	repo := fs.NewRepository(fs.Config{Path: path})
	_, err := repo.Load(context.Background())
	require.Error(t, err)
}
