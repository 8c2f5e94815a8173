// Package core contains the domain model and the vocabulary store. It
// has no knowledge of storage mechanisms; persistence is injected
// through the Repository port.
package core

// Entity is a user-defined classification concept with an attached
// property schema.
type Entity struct {
	ID          string               `json:"id"`
	Label       string               `json:"label,omitempty"`
	Color       string               `json:"color,omitempty"`
	Description string               `json:"description,omitempty"`
	Schema      []PropertyDefinition `json:"schema,omitempty"`
}

// HasSchema reports whether the entity carries at least one property
// definition. Entities without a schema never appear on the property
// editing surface.
func (e Entity) HasSchema() bool {
	return len(e.Schema) > 0
}

// Relation is a typed link between two entity kinds.
type Relation struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Vocabulary is the full set of entities, relations and tags available
// for annotation in a collection. It is owned exclusively by one Store
// and persisted as a single JSON document.
type Vocabulary struct {
	Tags      []string   `json:"tags"`
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
}

// EmptyVocabulary returns the zero document assumed when the backing
// file does not exist yet.
func EmptyVocabulary() Vocabulary {
	return Vocabulary{
		Tags:      []string{},
		Entities:  []Entity{},
		Relations: []Relation{},
	}
}

// Entity looks up an entity type by id.
func (v Vocabulary) Entity(id string) (Entity, bool) {
	for _, e := range v.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Clone returns a deep copy, so snapshots handed to callers cannot
// alias the store-owned aggregate.
func (v Vocabulary) Clone() Vocabulary {
	out := Vocabulary{
		Tags:      append([]string(nil), v.Tags...),
		Entities:  make([]Entity, len(v.Entities)),
		Relations: append([]Relation(nil), v.Relations...),
	}
	for i, e := range v.Entities {
		e.Schema = append([]PropertyDefinition(nil), e.Schema...)
		for j, p := range e.Schema {
			p.Values = append([]string(nil), p.Values...)
			p.Authorities = append([]AuthoritySource(nil), p.Authorities...)
			e.Schema[j] = p
		}
		out.Entities[i] = e
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Relations == nil {
		out.Relations = []Relation{}
	}
	return out
}

// EventType represents the type of change seen on the backing document.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change to the vocabulary document.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}
