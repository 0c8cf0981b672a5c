// Package state keeps the storefront's named collections consistent
// between memory and a durable store.KV.
//
// Each Collection is hydrated once from its key, then serves every read
// from memory. Mutations update memory first and are written through to
// the store immediately. A failed write is logged and recorded on the
// collection; it never rolls back the in-memory value, which stays
// authoritative for the rest of the process.
//
// Lifecycle per collection:
//
//	Uninitialized -> Hydrated -> Dirty -> Persisted -> Dirty -> ...
//
// A collection never returns to Uninitialized.
package state
