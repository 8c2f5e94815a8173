package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dHumanities/immarkus/pkg/adapters/fs"
)

func TestRepository_State(t *testing.T) {
	repo := fs.NewRepository(fs.Config{
		Path: filepath.Join(t.TempDir(), fs.DefaultFilename),
	})

	state, ok := repo.State().(fs.RepositoryState)
	require.True(t, ok)
	assert.Equal(t, repo.Path, state.Path)
	assert.False(t, state.WatcherActive)
	assert.Equal(t, []string{".imarkus", ".json", ".yaml", ".yml"}, state.Serializers,
		"serializer list is sorted")

	// Stable across calls.
	again := repo.State().(fs.RepositoryState)
	assert.Equal(t, state, again)
}
