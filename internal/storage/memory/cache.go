package memory

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sushihentaime/contenthub/internal/common"
)

type entry[T any] struct {
	seq   uint64
	value T
}

// collection is one table of the memory backend. Items never expire; seq records
// insertion order so equal timestamps list oldest insert first.
type collection[T any] struct {
	mu    sync.Mutex
	items *cache.Cache
	seq   uint64

	createdAt func(T) time.Time
	clone     func(T) T
	// conflicts reports whether two values violate a uniqueness rule.
	conflicts func(a, b T) bool
}

func newCollection[T any](createdAt func(T) time.Time, clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}

	return &collection[T]{
		items:     cache.New(cache.NoExpiration, 0),
		createdAt: createdAt,
		clone:     clone,
	}
}

func (c *collection[T]) insert(id string, v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conflicting(id, v) {
		return common.ErrDuplicateRecord
	}

	c.seq++
	if err := c.items.Add(id, entry[T]{seq: c.seq, value: c.clone(v)}, cache.NoExpiration); err != nil {
		return fmt.Errorf("%w: %w", common.ErrDuplicateRecord, err)
	}

	return nil
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(id)
	if !ok {
		var zero T
		return zero, common.ErrRecordNotFound
	}

	return c.clone(e.value), nil
}

// find returns the first value matching match.
func (c *collection[T]) find(match func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items.Items() {
		e := item.Object.(entry[T])
		if match(e.value) {
			return c.clone(e.value), nil
		}
	}

	var zero T
	return zero, common.ErrRecordNotFound
}

// update applies fn to a copy of the stored value and stores the result.
func (c *collection[T]) update(id string, fn func(v *T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.lookup(id)
	if !ok {
		return zero, common.ErrRecordNotFound
	}

	v := c.clone(e.value)
	fn(&v)

	if c.conflicting(id, v) {
		return zero, common.ErrDuplicateRecord
	}

	c.items.Set(id, entry[T]{seq: e.seq, value: v}, cache.NoExpiration)
	return c.clone(v), nil
}

func (c *collection[T]) remove(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(id)
	if !ok {
		var zero T
		return zero, common.ErrRecordNotFound
	}

	c.items.Delete(id)
	return e.value, nil
}

// list returns the values accepted by keep, newest first.
func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.items.Items()
	entries := make([]entry[T], 0, len(items))
	for _, item := range items {
		e := item.Object.(entry[T])
		if keep == nil || keep(e.value) {
			entries = append(entries, e)
		}
	}

	slices.SortFunc(entries, func(a, b entry[T]) int {
		if n := c.createdAt(b.value).Compare(c.createdAt(a.value)); n != 0 {
			return n
		}
		return cmp.Compare(a.seq, b.seq)
	})

	values := make([]T, len(entries))
	for i, e := range entries {
		values[i] = c.clone(e.value)
	}

	return values
}

func (c *collection[T]) lookup(id string) (entry[T], bool) {
	v, ok := c.items.Get(id)
	if !ok {
		return entry[T]{}, false
	}
	return v.(entry[T]), true
}

func (c *collection[T]) conflicting(id string, v T) bool {
	if c.conflicts == nil {
		return false
	}

	for key, item := range c.items.Items() {
		if key != id && c.conflicts(item.Object.(entry[T]).value, v) {
			return true
		}
	}

	return false
}
