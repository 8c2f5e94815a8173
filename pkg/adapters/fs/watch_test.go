package fs_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dHumanities/immarkus/pkg/adapters/fs"
	"github.com/dHumanities/immarkus/pkg/core"
)

func TestRepository_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), fs.DefaultFilename)
	repo := fs.NewRepository(fs.Config{Path: path})
	require.NoError(t, repo.Save(ctx, core.EmptyVocabulary()))

	events, err := repo.Watch(ctx)
	require.NoError(t, err)

	// An external full-document overwrite must surface as an event.
	require.NoError(t, repo.Save(ctx, testVocabulary()))

	select {
	case ev, ok := <-events:
		require.True(t, ok, "events channel closed unexpectedly")
		require.Equal(t, path, ev.Path)
		require.NotEmpty(t, ev.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	// Cancellation shuts the watcher down and closes the channel.
	cancel()
	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for events channel to close")
	}
}

func TestRepository_WatchIgnoresSiblingFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: filepath.Join(dir, fs.DefaultFilename)})
	require.NoError(t, repo.Save(ctx, core.EmptyVocabulary()))

	events, err := repo.Watch(ctx)
	require.NoError(t, err)

	sibling := fs.NewRepository(fs.Config{Path: filepath.Join(dir, "unrelated.json")})
	require.NoError(t, sibling.Save(ctx, core.EmptyVocabulary()))

	select {
	case ev, ok := <-events:
		if ok {
			t.Fatalf("unexpected event for sibling file: %+v", ev)
		}
	case <-time.After(300 * time.Millisecond):
		// No event within the debounce window: sibling writes are
		// filtered as intended.
	}
}
