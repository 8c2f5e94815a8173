// Package form derives a flat, collision-free editable form state from
// the schema bodies attached to one annotation, and reconciles edits
// back into the annotation's body collection.
package form

import (
	"strconv"

	"github.com/dHumanities/immarkus/pkg/core"
)

// SafeKeys maps (body, property name) pairs to collision-free flat
// form-state keys and back. Two bodies on the same annotation may both
// carry a property named "Notes"; their keys stay distinct because the
// key is namespaced by body identity.
//
// A SafeKeys value is built once per edit session and is immutable
// afterwards.
type SafeKeys struct {
	keys  map[pair]string   // (bodyID, name) -> key
	names map[string]string // key -> name
}

type pair struct {
	bodyID string
	name   string
}

// NewSafeKeys builds the codec for a set of resolved schema bodies.
// Key text is bodyID@name, disambiguated with a counter when ids or
// names themselves contain "@" and two pairs would otherwise produce
// the same text. Inversion always goes through the maps, so a
// disambiguated key round-trips like any other.
func NewSafeKeys(bodies []SchemaBody) *SafeKeys {
	sk := &SafeKeys{
		keys:  make(map[pair]string),
		names: make(map[string]string),
	}
	for _, sb := range bodies {
		for _, def := range sb.Entity.Schema {
			p := pair{sb.Body.ID, def.Name}
			if _, ok := sk.keys[p]; ok {
				continue
			}
			key := sb.Body.ID + "@" + def.Name
			for n := 2; ; n++ {
				if _, taken := sk.names[key]; !taken {
					break
				}
				key = sb.Body.ID + "@" + def.Name + "@" + strconv.Itoa(n)
			}
			sk.keys[p] = key
			sk.names[key] = def.Name
		}
	}
	return sk
}

// Key returns the form-state key for a property on a specific body.
// ok is false when the pair is not part of this edit session.
func (sk *SafeKeys) Key(body core.AnnotationBody, name string) (string, bool) {
	key, ok := sk.keys[pair{body.ID, name}]
	return key, ok
}

// Name recovers the property name a key was generated for. Stale keys
// (e.g. after a body was removed mid-session) report ok == false and
// are excluded from reconciliation rather than treated as an error.
func (sk *SafeKeys) Name(key string) (string, bool) {
	name, ok := sk.names[key]
	return name, ok
}
