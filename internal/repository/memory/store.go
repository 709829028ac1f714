// Package memory implements the repositories over volatile in-process
// collections. Nothing here survives a restart; every collection starts
// empty (or seeded) on boot and lives for the process lifetime.
package memory

import (
	"sync"

	"github.com/google/uuid"
)

// collection is a mutex-guarded map that preserves insertion order for
// listing. Items are cloned on the way in and on the way out, so the
// stored state only ever changes through put and replace under the
// lock; pointers held by callers never alias the store.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*T
	order []uuid.UUID
	clone func(*T) *T
}

func newCollection[T any](clone func(*T) *T) *collection[T] {
	return &collection[T]{items: make(map[uuid.UUID]*T), clone: clone}
}

func (c *collection[T]) put(id uuid.UUID, item *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = c.clone(item)
}

func (c *collection[T]) get(id uuid.UUID) (*T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return c.clone(item), true
}

// replace swaps the stored item only when the id already exists. A miss
// is a silent no-op.
func (c *collection[T]) replace(id uuid.UUID, item *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; ok {
		c.items[id] = c.clone(item)
	}
}

// remove is idempotent; deleting an unknown id is a no-op.
func (c *collection[T]) remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *collection[T]) list() []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}
