package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dHumanities/immarkus/pkg/core"
)

// ErrValidationFailed blocks submission while required or malformed
// fields remain. The wrapped *ValidationError carries the per-field
// reasons.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError aggregates per-field errors for one failed submit.
type ValidationError struct {
	Fields []core.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Updater is the one operation the session needs from the external
// annotation store on submit.
type Updater interface {
	UpdateAnnotation(ctx context.Context, a core.Annotation) error
}

// Session is the state machine for one edit session. It seeds a flat
// form state from the annotation's resolved schema bodies plus the
// note, accepts last-write-wins edits, and on submit reconciles the
// state back into the body collection. Abandoning a session has no
// side effects; nothing is persisted until Submit succeeds.
//
// A session is owned by a single edit surface and is not safe for
// concurrent use.
type Session struct {
	annotation   core.Annotation
	schemaBodies []SchemaBody
	note         *core.AnnotationBody
	others       []core.AnnotationBody
	keys         *SafeKeys
	state        map[string]any
	showErrors   bool
	failClosed   bool
	logger       *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for resolution warnings.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithFailClosed makes form keys that resolve to no live property
// definition a validation error instead of being silently excluded.
// The default is fail-open: such keys are ignored at validation time
// and dropped at reconciliation.
func WithFailClosed() SessionOption {
	return func(s *Session) { s.failClosed = true }
}

// NewSession opens an edit session for one annotation. The safe-key
// codec and the initial form state are fixed here; the vocabulary is
// not consulted again afterwards.
func NewSession(a core.Annotation, r Resolver, opts ...SessionOption) *Session {
	s := &Session{annotation: a}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.schemaBodies = Resolve(a, r, s.logger)
	s.keys = NewSafeKeys(s.schemaBodies)
	s.state = make(map[string]any)

	inSchema := make(map[string]bool, len(s.schemaBodies))
	for _, sb := range s.schemaBodies {
		inSchema[sb.Body.ID] = true
		for _, def := range sb.Entity.Schema {
			key, _ := s.keys.Key(sb.Body, def.Name)
			s.state[key] = sb.Body.Properties[def.Name]
		}
	}

	// The first commenting body seeds the note; further commenting
	// bodies pass through like any other body.
	for _, b := range a.Bodies {
		if b.Purpose == core.PurposeCommenting && s.note == nil {
			note := b
			s.note = &note
			continue
		}
		if inSchema[b.ID] {
			continue
		}
		s.others = append(s.others, b)
	}
	if s.note != nil {
		s.state[s.NoteKey()] = s.note.Value
	}

	return s
}

// NoteKey is the well-known form-state key for the free-text note.
func (s *Session) NoteKey() string {
	return s.annotation.ID + "@note"
}

// Set records an edit. Updates are last-write-wins per key; no
// validation happens here.
func (s *Session) Set(key string, value any) {
	s.state[key] = value
}

// Value returns the current form-state value for a key.
func (s *Session) Value(key string) (any, bool) {
	v, ok := s.state[key]
	return v, ok
}

// Field is the per-property render contract handed to the editing UI.
type Field struct {
	Key        string
	Body       core.AnnotationBody
	Entity     core.Entity
	Definition core.PropertyDefinition
	Value      any
}

// Fields lists every editable property in schema order, grouped by
// body in body order.
func (s *Session) Fields() []Field {
	var fields []Field
	for _, sb := range s.schemaBodies {
		for _, def := range sb.Entity.Schema {
			key, _ := s.keys.Key(sb.Body, def.Name)
			fields = append(fields, Field{
				Key:        key,
				Body:       sb.Body,
				Entity:     sb.Entity,
				Definition: def,
				Value:      s.state[key],
			})
		}
	}
	return fields
}

// Validate checks every property of every active schema instance
// against its definition. The result is stable: ordered by body, then
// schema order.
func (s *Session) Validate() []core.FieldError {
	var fieldErrs []core.FieldError
	for _, sb := range s.schemaBodies {
		for _, def := range sb.Entity.Schema {
			key, _ := s.keys.Key(sb.Body, def.Name)
			if err := def.Validate(s.state[key]); err != nil {
				var fe *core.FieldError
				if errors.As(err, &fe) {
					fieldErrs = append(fieldErrs, core.FieldError{
						Key:    key,
						Name:   fe.Name,
						Reason: fe.Reason,
					})
				}
			}
		}
	}

	if s.failClosed {
		var stale []string
		for key := range s.state {
			if key == s.NoteKey() {
				continue
			}
			if _, ok := s.keys.Name(key); !ok {
				stale = append(stale, key)
			}
		}
		sort.Strings(stale)
		for _, key := range stale {
			fieldErrs = append(fieldErrs, core.FieldError{
				Key:    key,
				Reason: core.ReasonNotApplicable,
			})
		}
	}

	return fieldErrs
}

// ShowErrors reports whether a failed submit has made validation
// errors visible. The flag latches until a submit succeeds.
func (s *Session) ShowErrors() bool {
	return s.showErrors
}

// Submit validates and, if everything passes, rebuilds the body
// collection and replaces the annotation atomically with a single
// update call. On validation failure nothing is persisted, the form
// state is retained unchanged, and errors become visible.
func (s *Session) Submit(ctx context.Context, store Updater) error {
	if fieldErrs := s.Validate(); len(fieldErrs) > 0 {
		s.showErrors = true
		return &ValidationError{Fields: fieldErrs}
	}

	updated := core.Annotation{
		ID:     s.annotation.ID,
		Target: s.annotation.Target,
		Bodies: s.reconcileBodies(),
	}

	if err := store.UpdateAnnotation(ctx, updated); err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	s.showErrors = false
	return nil
}

// reconcileBodies rebuilds the body collection: schema bodies get
// their properties recomputed from the form state, other bodies pass
// through untouched, and the note body is updated, created or omitted
// depending on the note value.
func (s *Session) reconcileBodies() []core.AnnotationBody {
	updated := make([]core.AnnotationBody, 0, len(s.annotation.Bodies)+1)

	for _, sb := range s.schemaBodies {
		props := make(map[string]any)
		for key, value := range s.state {
			name, ok := s.keys.Name(key)
			if !ok {
				continue // stale or note key, not applicable
			}
			expected, ok := s.keys.Key(sb.Body, name)
			if !ok || expected != key {
				continue // belongs to a different body
			}
			if value == nil {
				continue // unset optional property, not stored
			}
			props[name] = value
		}
		body := sb.Body
		body.Annotation = s.annotation.ID
		body.Properties = props
		updated = append(updated, body)
	}

	updated = append(updated, s.others...)

	noteValue, _ := s.state[s.NoteKey()].(string)
	if noteValue != "" {
		var note core.AnnotationBody
		if s.note != nil {
			note = *s.note
			note.Value = noteValue
		} else {
			note = core.NewNoteBody(s.annotation.ID, noteValue)
		}
		updated = append(updated, note)
	}

	return updated
}
