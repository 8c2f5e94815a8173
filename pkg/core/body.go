package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Purpose discriminates the heterogeneous body union at runtime.
type Purpose string

const (
	// PurposeClassifying attaches an entity-type tag (and optionally
	// typed properties) to an annotation.
	PurposeClassifying Purpose = "classifying"

	// PurposeCommenting carries free-text note content.
	PurposeCommenting Purpose = "commenting"
)

// AnnotationBody is one semantic attachment on an image annotation.
// Bodies are externally owned; the property engine only ever rewrites
// the Properties of classifying bodies and the Value of the note body,
// and passes every other body through untouched.
type AnnotationBody struct {
	ID         string         `json:"id"`
	Annotation string         `json:"annotation,omitempty"`
	Type       string         `json:"type,omitempty"`
	Purpose    Purpose        `json:"purpose,omitempty"`
	Source     string         `json:"source,omitempty"`     // entity id, classifying only
	Value      string         `json:"value,omitempty"`      // free text, commenting only
	Properties map[string]any `json:"properties,omitempty"` // classifying with schema only
	Created    time.Time      `json:"created,omitempty"`
}

// Annotation is the externally owned record the engine reads whole and
// writes back whole. Target is carried opaquely; its shape belongs to
// the annotation layer.
type Annotation struct {
	ID     string           `json:"id"`
	Bodies []AnnotationBody `json:"bodies"`
	Target json.RawMessage  `json:"target,omitempty"`
}

// Body returns the first body matching the purpose.
func (a Annotation) Body(p Purpose) (AnnotationBody, bool) {
	for _, b := range a.Bodies {
		if b.Purpose == p {
			return b, true
		}
	}
	return AnnotationBody{}, false
}

// NewNoteBody creates a fresh commenting body for an annotation.
func NewNoteBody(annotationID, value string) AnnotationBody {
	return AnnotationBody{
		ID:         uuid.NewString(),
		Annotation: annotationID,
		Type:       "TextualBody",
		Purpose:    PurposeCommenting,
		Value:      value,
		Created:    time.Now(),
	}
}

// NewClassifyingBody creates a body tagging an annotation with an
// entity type.
func NewClassifyingBody(annotationID, entityID string) AnnotationBody {
	return AnnotationBody{
		ID:         uuid.NewString(),
		Annotation: annotationID,
		Purpose:    PurposeClassifying,
		Source:     entityID,
		Created:    time.Now(),
	}
}
