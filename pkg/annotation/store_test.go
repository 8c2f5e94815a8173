package annotation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dHumanities/immarkus/pkg/annotation"
	"github.com/dHumanities/immarkus/pkg/core"
)

func TestMemStore_Annotation(t *testing.T) {
	ctx := context.Background()
	store := annotation.NewMemStore()

	_, err := store.Annotation(ctx, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)

	want := core.Annotation{ID: "anno-1", Bodies: []core.AnnotationBody{
		{ID: "b1", Purpose: core.PurposeClassifying, Source: "person"},
	}}
	store.Put(want)

	got, err := store.Annotation(ctx, "anno-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemStore_UpdateAnnotation(t *testing.T) {
	ctx := context.Background()
	store := annotation.NewMemStore()

	err := store.UpdateAnnotation(ctx, core.Annotation{ID: "missing"})
	require.ErrorIs(t, err, core.ErrNotFound)

	store.Put(core.Annotation{ID: "anno-1"})
	updated := core.Annotation{ID: "anno-1", Bodies: []core.AnnotationBody{
		{ID: "b1", Purpose: core.PurposeCommenting, Value: "a note"},
	}}
	require.NoError(t, store.UpdateAnnotation(ctx, updated))

	got, err := store.Annotation(ctx, "anno-1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestMemStore_DeleteBody(t *testing.T) {
	ctx := context.Background()
	store := annotation.NewMemStore()
	store.Put(core.Annotation{ID: "anno-1", Bodies: []core.AnnotationBody{
		{ID: "b1", Annotation: "anno-1"},
		{ID: "b2", Annotation: "anno-1"},
	}})

	require.NoError(t, store.DeleteBody(ctx, core.AnnotationBody{ID: "b1", Annotation: "anno-1"}))

	got, err := store.Annotation(ctx, "anno-1")
	require.NoError(t, err)
	require.Len(t, got.Bodies, 1)
	assert.Equal(t, "b2", got.Bodies[0].ID)

	// Deleting again, or from an unknown annotation, is a no-op.
	require.NoError(t, store.DeleteBody(ctx, core.AnnotationBody{ID: "b1", Annotation: "anno-1"}))
	require.NoError(t, store.DeleteBody(ctx, core.AnnotationBody{ID: "x", Annotation: "ghost"}))
}
