package immarkus_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dHumanities/immarkus"
	"github.com/dHumanities/immarkus/pkg/annotation"
	"github.com/dHumanities/immarkus/pkg/core"
)

// Example_basic shows the full loop: define an entity type with a
// schema, attach it to an annotation, and fill in its properties
// through an edit session.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "immarkus-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()

	// Open the vocabulary store, creating the backing document.
	store, err := immarkus.Open(ctx, tmpDir, immarkus.WithAutoCreate(true))
	if err != nil {
		log.Fatal(err)
	}

	// 1. Define an entity type with a schema
	err = store.AddEntity(ctx, core.Entity{
		ID: "person", Label: "Person",
		Schema: []core.PropertyDefinition{
			{Type: core.PropertyText, Name: "Name", Required: true},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. An annotation classified as a person
	annotations := annotation.NewMemStore()
	annotations.Put(core.Annotation{
		ID: "anno-1",
		Bodies: []core.AnnotationBody{
			{ID: "b1", Purpose: core.PurposeClassifying, Source: "person"},
		},
	})

	// 3. Edit its properties and submit
	a, err := annotations.Annotation(ctx, "anno-1")
	if err != nil {
		log.Fatal(err)
	}
	session := immarkus.NewSession(a, store)
	session.Set(session.Fields()[0].Key, "Ada Lovelace")
	if err := session.Submit(ctx, annotations); err != nil {
		log.Fatal(err)
	}

	updated, err := annotations.Annotation(ctx, "anno-1")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Name: %s\n", updated.Bodies[0].Properties["Name"])
	// Output:
	// Name: Ada Lovelace
}
