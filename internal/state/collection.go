package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/poolstore/internal/store"
)

// Status is the synchronization state of a collection.
type Status int

const (
	Uninitialized Status = iota
	Hydrated
	Dirty
	Persisted
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Hydrated:
		return "hydrated"
	case Dirty:
		return "dirty"
	case Persisted:
		return "persisted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Syncable is the type-independent view of a Collection.
type Syncable interface {
	Key() string
	Status() Status
	Err() error
	Hydrate(ctx context.Context)
	Persist(ctx context.Context) error
}

// Collection is one named value of type T stored under a fixed key.
// It is safe for concurrent use.
type Collection[T any] struct {
	key    string
	kv     store.KV
	logger *slog.Logger
	def    func() T

	mu     sync.Mutex
	value  T
	status Status
	err    error
}

// NewCollection creates an uninitialized collection. def supplies the
// value used when the key is missing or holds malformed data.
func NewCollection[T any](key string, kv store.KV, logger *slog.Logger, def func() T) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{key: key, kv: kv, logger: logger, def: def, value: def()}
}

// Key returns the store key.
func (c *Collection[T]) Key() string { return c.key }

// Status returns the current synchronization state.
func (c *Collection[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Err returns the most recent persist failure, or nil once a later write
// succeeds.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Hydrate loads the collection from the store. A missing key, a read
// error or a value that does not decode as T all leave the default in
// place. Hydrating an already resident collection is a no-op.
func (c *Collection[T]) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != Uninitialized {
		return
	}
	c.status = Hydrated
	c.value = c.def()

	raw, found, err := c.kv.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("hydrate read failed, using default", "key", c.key, "error", err)
		return
	}
	if !found || raw == "" || raw == "null" {
		c.logger.Debug("hydrate miss, using default", "key", c.key)
		return
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.logger.Warn("hydrate parse failed, using default", "key", c.key, "error", err)
		return
	}
	c.value = v
	c.logger.Debug("hydrated", "key", c.key, "bytes", len(raw))
}

// Get returns the resident value.
func (c *Collection[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the resident value and writes it through to the store.
// The new value is kept even when the write fails; see Err.
func (c *Collection[T]) Set(ctx context.Context, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.status = Dirty
	c.persistLocked(ctx)
}

// Update applies fn to the resident value and stores the result.
func (c *Collection[T]) Update(ctx context.Context, fn func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = fn(c.value)
	c.status = Dirty
	c.persistLocked(ctx)
}

// Persist writes the resident value to the store and returns the write
// error, if any.
func (c *Collection[T]) Persist(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Dirty
	c.persistLocked(ctx)
	return c.err
}

func (c *Collection[T]) persistLocked(ctx context.Context) {
	data, err := json.Marshal(c.value)
	if err != nil {
		c.err = fmt.Errorf("encode %s: %w", c.key, err)
		c.logger.Warn("persist failed", "key", c.key, "error", c.err)
		return
	}
	if err := c.kv.Set(ctx, c.key, string(data)); err != nil {
		c.err = fmt.Errorf("persist %s: %w", c.key, err)
		c.logger.Warn("persist failed", "key", c.key, "error", err)
		return
	}
	c.err = nil
	c.status = Persisted
	c.logger.Debug("persisted", "key", c.key, "bytes", len(data))
}
