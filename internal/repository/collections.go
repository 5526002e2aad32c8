package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/bytedance/sonic"
)

// Collections serializes every read-modify-write cycle behind one
// lock, so overlapping mutations from concurrent requests never
// clobber each other's whole-collection writes. Reads outside a
// mutation go straight through.
type Collections struct {
	mu    sync.Mutex
	store CollectionStore
}

func NewCollections(store CollectionStore) *Collections {
	return &Collections{
		store: store,
	}
}

// WithLock runs fn holding the write lock. Used when one logical
// operation spans several collections (user cascade delete); fn must
// call Load/Save, not Mutate.
func (c *Collections) WithLock(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}

// Load decodes the named collection, empty slice when absent.
func Load[T any](ctx context.Context, c *Collections, name string) ([]T, error) {
	raw, err := c.store.GetCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, errors.New("decoding collection " + name + " error: " + err.Error())
	}
	return records, nil
}

// Save overwrites the named collection with records.
func Save[T any](ctx context.Context, c *Collections, name string, records []T) error {
	data, err := sonic.Marshal(records)
	if err != nil {
		return errors.New("encoding collection " + name + " error: " + err.Error())
	}
	return c.store.SaveCollection(ctx, name, data)
}

// Mutate reads the freshest records, applies fn and writes the result
// back, all under the lock. fn returning an error aborts with nothing
// written.
func Mutate[T any](ctx context.Context, c *Collections, name string, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := Load[T](ctx, c, name)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return Save(ctx, c, name, updated)
}
