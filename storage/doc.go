// Package storage defines the document-store contract for the knowledge
// base: knowledge documents, generated training material sets, and
// append-only analytics events.
//
// Two implementations exist. The badger subpackage is the primary backend,
// an embedded key-value database with secondary indices for entity and date
// lookups. The jsonfile subpackage is the degraded fallback used when the
// primary backend cannot be opened; it keeps each record kind in a flat JSON
// array file. Both satisfy the Backend interface, so the orchestration layer
// does not know which one it is running on.
package storage
