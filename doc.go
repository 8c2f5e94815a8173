// Package immarkus is the composition root for the IMMARKUS annotation
// property engine.
//
// It connects the core domain (vocabulary, property type system, form
// reconciliation) with the storage adapters (single-document JSON file,
// SQLite) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// An image annotation carries an externally owned, heterogeneous list
// of bodies. Classifying bodies reference user-defined entity types
// whose schemas describe typed properties; this module derives a flat,
// collision-free form state from those bodies, validates edited values
// per property type, and reconciles them back into the body list
// without disturbing anything it does not own.
//
// Usage:
//
//	store, err := immarkus.Open(ctx, "./collection",
//		immarkus.WithAutoCreate(true),
//		immarkus.WithLogger(logger),
//	)
//
//	session := immarkus.NewSession(annotation, store)
//	session.Set(key, "34")
//	err = session.Submit(ctx, annotationStore)
package immarkus
