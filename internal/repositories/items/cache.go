package items

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/KirkDiggler/rpg-progression/internal/errors"
)

// cachedRepository keeps recently read items in an in-memory LRU with
// time based expiration. Writes go through to the wrapped repository and
// evict the cached entry once the write has returned.
//
// Every write bumps a per item generation. A read only fills the cache when
// no write started or finished while it was loading, so a reader racing a
// writer can never park the old record in the LRU.
type cachedRepository struct {
	next Repository
	lru  *expirable.LRU[string, *Record]

	mu          sync.Mutex
	generations map[string]uint64
	writers     map[string]int
}

// NewCached wraps next with a read cache of size entries that live for ttl
func NewCached(next Repository, size int, ttl time.Duration) (Repository, error) {
	vb := errors.NewValidationBuilder()
	if next == nil {
		vb.RequiredField("next")
	}
	if size <= 0 {
		vb.Fieldf("size", "must be positive, got %d", size)
	}
	if ttl < 0 {
		vb.Fieldf("ttl", "must not be negative, got %s", ttl)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return &cachedRepository{
		next:        next,
		lru:         expirable.NewLRU[string, *Record](size, nil, ttl),
		generations: make(map[string]uint64),
		writers:     make(map[string]int),
	}, nil
}

func (c *cachedRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	return c.next.Create(ctx, input)
}

func (c *cachedRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if record, ok := c.lru.Get(input.ID); ok {
		return &GetOutput{Record: copyRecord(record)}, nil
	}

	gen := c.generation(input.ID)

	out, err := c.next.Get(ctx, input)
	if err != nil {
		return nil, err
	}

	c.fill(input.ID, gen, out.Record)
	return out, nil
}

func (c *cachedRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Item == nil {
		return c.next.Update(ctx, input)
	}

	done := c.beginWrite(input.Item.ID)
	defer done()

	return c.next.Update(ctx, input)
}

func (c *cachedRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	done := c.beginWrite(input.ID)
	defer done()

	return c.next.Delete(ctx, input)
}

// generation returns the write generation of id, or 0 while a write is in flight
func (c *cachedRepository) generation(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writers[id] > 0 {
		return 0
	}
	return c.generations[id] + 1
}

// fill caches record unless a write touched id since gen was taken
func (c *cachedRepository) fill(id string, gen uint64, record *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen == 0 || c.writers[id] > 0 || c.generations[id]+1 != gen {
		return
	}
	c.lru.Add(id, copyRecord(record))
}

// beginWrite marks id as being written and returns the func that ends the
// write. Ending evicts id whether or not the write succeeded.
func (c *cachedRepository) beginWrite(id string) func() {
	c.mu.Lock()
	c.writers[id]++
	c.generations[id]++
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.lru.Remove(id)
		c.generations[id]++
		c.writers[id]--
		if c.writers[id] == 0 {
			delete(c.writers, id)
		}
	}
}

func (c *cachedRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	return c.next.ListByOwner(ctx, input)
}

// copyRecord detaches cached records from callers that mutate what they read
func copyRecord(r *Record) *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Item = r.Item.Clone()
	return &out
}
