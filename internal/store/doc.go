// Package store provides the durable key-value stores behind the
// synchronization layer.
//
// Every collection is saved as one UTF-8 JSON document under a fixed key
// (see Keys). A store offers whole-value Get and Set only; there are no
// transactions across keys and no partial updates.
//
// # Backends
//
//   - SQLite: single-file default, table kv(key, value, updated_at)
//   - Redis: shared store, one string per key under a configurable prefix
//   - Memory: process-local, used by tests and the scenario harness
//
// # SQLite Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
