package form

import (
	"log/slog"

	"github.com/dHumanities/immarkus/pkg/core"
)

// Resolver looks up entity types by id. *core.Store satisfies it; so
// does a bare core.Vocabulary via VocabularyResolver.
type Resolver interface {
	Entity(id string) (core.Entity, bool)
}

// VocabularyResolver adapts a plain vocabulary snapshot to the
// Resolver interface.
type VocabularyResolver core.Vocabulary

func (v VocabularyResolver) Entity(id string) (core.Entity, bool) {
	return core.Vocabulary(v).Entity(id)
}

// SchemaBody pairs one classifying body with its resolved entity type.
type SchemaBody struct {
	Body   core.AnnotationBody
	Entity core.Entity
}

// Resolve matches an annotation's classifying bodies against the
// vocabulary. Bodies referencing a missing entity are logged and
// treated as having an empty schema; bodies whose entity has no schema
// are likewise excluded from the editing surface. Both stay in the
// annotation's body list untouched.
func Resolve(a core.Annotation, r Resolver, logger *slog.Logger) []SchemaBody {
	if logger == nil {
		logger = slog.Default()
	}

	var resolved []SchemaBody
	for _, b := range a.Bodies {
		if b.Purpose != core.PurposeClassifying {
			continue
		}
		entity, ok := r.Entity(b.Source)
		if !ok {
			logger.Warn("entity not found in vocabulary",
				"entity", b.Source, "body", b.ID, "annotation", a.ID)
			continue
		}
		if !entity.HasSchema() {
			continue
		}
		resolved = append(resolved, SchemaBody{Body: b, Entity: entity})
	}
	return resolved
}
