package immarkus_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dHumanities/immarkus"
	"github.com/dHumanities/immarkus/pkg/annotation"
	"github.com/dHumanities/immarkus/pkg/core"
)

// Exercises the whole flow: open a store, define an entity schema,
// edit an annotation's properties through a session and submit.
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := immarkus.Open(ctx, dir, immarkus.WithAutoCreate(true))
	require.NoError(t, err)

	require.NoError(t, store.AddEntity(ctx, core.Entity{
		ID: "person", Label: "Person",
		Schema: []core.PropertyDefinition{
			{Type: core.PropertyText, Name: "Name", Required: true},
			{Type: core.PropertyNumber, Name: "Age"},
		},
	}))

	annotations := annotation.NewMemStore()
	annotations.Put(core.Annotation{
		ID: "anno-1",
		Bodies: []core.AnnotationBody{
			{ID: "b1", Purpose: core.PurposeClassifying, Source: "person"},
		},
	})

	a, err := annotations.Annotation(ctx, "anno-1")
	require.NoError(t, err)

	session := immarkus.NewSession(a, store)
	fields := session.Fields()
	require.Len(t, fields, 2)

	// Required field missing: the submit is rejected and nothing is
	// written.
	err = session.Submit(ctx, annotations)
	require.Error(t, err)

	session.Set(fields[0].Key, "Ada Lovelace")
	session.Set(fields[1].Key, "36")
	session.Set(session.NoteKey(), "verified against the census")
	require.NoError(t, session.Submit(ctx, annotations))

	got, err := annotations.Annotation(ctx, "anno-1")
	require.NoError(t, err)
	require.Len(t, got.Bodies, 2)
	assert.Equal(t, "Ada Lovelace", got.Bodies[0].Properties["Name"])
	assert.Equal(t, "36", got.Bodies[0].Properties["Age"])
	assert.Equal(t, core.PurposeCommenting, got.Bodies[1].Purpose)

	// A second store bound to the same document sees the vocabulary.
	reopened, err := immarkus.Open(ctx, filepath.Join(dir, "vocabulary.imarkus"))
	require.NoError(t, err)
	_, ok := reopened.Entity("person")
	assert.True(t, ok)
}
