// Package cache is a generic string-keyed TTL cache. Entries are purged
// lazily when read past expiry, or in bulk by a periodic sweep. There is no
// size based eviction, the memory bound is the key space and sweep cadence.
package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a concurrent map of values with per-entry expiry.
type TTL[V any] struct {
	entries *xsync.MapOf[string, entry[V]]
}

func New[V any]() *TTL[V] {
	return &TTL[V]{entries: xsync.NewMapOf[entry[V]]()}
}

// Set stores v under k for the given duration. A ttl of zero or less stores
// nothing.
func (c *TTL[V]) Set(k string, v V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.entries.Store(k, entry[V]{value: v, expiresAt: time.Now().Add(ttl)})
}

// Get returns the live value under k. An expired entry is deleted on the
// spot so no stale read is ever observable.
func (c *TTL[V]) Get(k string) (v V, ok bool) {
	var en entry[V]
	if en, ok = c.entries.Load(k); !ok {
		return
	}
	if !time.Now().Before(en.expiresAt) {
		c.entries.Delete(k)
		ok = false
		return
	}
	v = en.value
	return
}

func (c *TTL[V]) Delete(k string) { c.entries.Delete(k) }

// Len reports the number of stored entries, expired or not.
func (c *TTL[V]) Len() int { return c.entries.Size() }

// Sweep removes every entry at or past its expiry.
func (c *TTL[V]) Sweep() {
	now := time.Now()
	c.entries.Range(func(k string, en entry[V]) bool {
		if !now.Before(en.expiresAt) {
			c.entries.Delete(k)
		}
		return true
	})
}

// Start runs Sweep every interval until the context is done.
func (c *TTL[V]) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
