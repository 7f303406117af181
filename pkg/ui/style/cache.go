package style

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/odvcencio/prism/pkg/errors"
)

// DefaultCacheSize is the capacity of the process-wide combine cache.
const DefaultCacheSize = 1024

type pair struct {
	under, over Style
}

// Cache memoizes Combine results. It is bounded, evicts the least recently
// used pair at capacity and is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[pair, Style]
}

// NewCache creates a cache holding at most size combinations.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "cache size must be positive, got %d", size)
	}
	entries, err := lru.NewWithEvict[pair, Style](size, recordCombineEviction)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "create combine cache")
	}
	return &Cache{entries: entries}, nil
}

// Combine returns b painted over a, from the cache when possible.
func (c *Cache) Combine(a, b Style) Style {
	if b.IsZero() {
		return a
	}
	key := pair{under: a, over: b}
	if out, ok := c.entries.Get(key); ok {
		recordCombineHit()
		return out
	}
	recordCombineMiss()
	out := combine(a, b)
	c.entries.Add(key, out)
	return out
}

// Len returns the number of cached combinations.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached combination.
func (c *Cache) Purge() {
	c.entries.Purge()
}

var (
	defaultOnce  sync.Once
	defaultCache atomic.Pointer[Cache]
)

// DefaultCache returns the process-wide cache, creating it on first use.
func DefaultCache() *Cache {
	defaultOnce.Do(func() {
		if defaultCache.Load() != nil {
			return
		}
		c, _ := NewCache(DefaultCacheSize)
		defaultCache.CompareAndSwap(nil, c)
	})
	return defaultCache.Load()
}

// SetDefaultCacheSize replaces the process-wide cache with an empty one of
// the given capacity.
func SetDefaultCacheSize(size int) error {
	c, err := NewCache(size)
	if err != nil {
		return err
	}
	defaultCache.Store(c)
	return nil
}

// Combine paints b over a using the process-wide cache: the background is
// a.Background with b.Background alpha-composited on top, the foreground is
// b's unless transparent, and attributes, link and metadata are b's when set.
// Combine is not commutative.
func Combine(a, b Style) Style {
	return DefaultCache().Combine(a, b)
}

// Fold combines styles left to right, so later styles paint over earlier
// ones. An empty fold is the empty style.
func Fold(styles ...Style) Style {
	var out Style
	for i, s := range styles {
		if i == 0 {
			out = s
			continue
		}
		out = Combine(out, s)
	}
	return out
}

// Add is Combine with s underneath.
func (s Style) Add(over Style) Style {
	return Combine(s, over)
}
