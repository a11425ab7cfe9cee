// Package previewcache holds rendered thumbnail previews keyed by session
// and concept index. Callers own invalidation: regenerating a preview evicts
// its entry before rendering again.
package previewcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iconidentify/vidseo/internal/domain"
)

// Key identifies one preview. Run separates the runs a session has made.
type Key struct {
	Session domain.SessionID
	Run     domain.RunID
	Concept int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%d", k.Session, k.Run, k.Concept)
}

// Image is a generated preview handle.
type Image struct {
	Data        []byte
	ContentType string
	CreatedAt   time.Time
}

// Generator produces the preview for a key on a cache miss.
type Generator func(ctx context.Context) (*Image, error)

// Defaults bounding the cache when no options are given.
const (
	DefaultMaxEntries = 512
	DefaultTTL        = time.Hour
)

type entry struct {
	img      *Image
	storedAt time.Time
}

// Cache is safe for concurrent use. Concurrent misses for the same key share
// one generator call. Entries expire after the TTL; once the cache is full the
// oldest entry is evicted to make room.
type Cache struct {
	mu         sync.RWMutex
	entries    map[Key]entry
	group      singleflight.Group
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries caps the number of cached previews. n <= 0 keeps the default.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithTTL sets how long a preview stays valid. ttl <= 0 keeps the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[Key]entry),
		maxEntries: DefaultMaxEntries,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached preview for key. Expired previews are misses.
func (c *Cache) Get(key Key) (*Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.expired(e) {
		return nil, false
	}
	return e.img, true
}

// GetOrCreate returns the cached preview or runs gen and stores its result.
// Failed generations are not cached.
func (c *Cache) GetOrCreate(ctx context.Context, key Key, gen Generator) (*Image, error) {
	if img, ok := c.Get(key); ok {
		return img, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		if img, ok := c.Get(key); ok {
			return img, nil
		}
		img, err := gen(ctx)
		if err != nil {
			return nil, err
		}
		if img.CreatedAt.IsZero() {
			img.CreatedAt = c.now()
		}
		c.store(key, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Image), nil
}

func (c *Cache) store(key Key, img *Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
	for len(c.entries) >= c.maxEntries {
		var oldest Key
		var oldestAt time.Time
		first := true
		for k, e := range c.entries {
			if first || e.storedAt.Before(oldestAt) {
				oldest, oldestAt, first = k, e.storedAt, false
			}
		}
		delete(c.entries, oldest)
	}
	c.entries[key] = entry{img: img, storedAt: c.now()}
}

func (c *Cache) expired(e entry) bool {
	return c.now().Sub(e.storedAt) >= c.ttl
}

// Regenerate evicts key and generates it again.
func (c *Cache) Regenerate(ctx context.Context, key Key, gen Generator) (*Image, error) {
	c.Invalidate(key)
	return c.GetOrCreate(ctx, key, gen)
}

// Invalidate evicts a single preview.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateSession evicts every preview owned by session.
func (c *Cache) InvalidateSession(session domain.SessionID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if k.Session == session {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of live cached previews.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if !c.expired(e) {
			n++
		}
	}
	return n
}
