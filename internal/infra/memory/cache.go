package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"storefront-catalog-service/internal/domain"
)

// Cache is an in-process domain.Cache used when Redis is disabled.
// A background loop evicts entries as they expire; call Close to stop it.
type Cache struct {
	items     *ttlcache.Cache[string, []byte]
	closeOnce sync.Once
}

// NewCache creates an empty cache and starts its expiry loop.
func NewCache() *Cache {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()

	return &Cache{items: items}
}

// Get returns nil when the key is missing or expired.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, nil
	}
	return slices.Clone(item.Value()), nil
}

// Set stores value; a non-positive ttl keeps it until deleted.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.items.Set(key, slices.Clone(value), ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

func (c *Cache) Clear(_ context.Context) error {
	c.items.DeleteAll()
	return nil
}

// Len reports the number of stored entries, including expired ones the loop
// has not evicted yet.
func (c *Cache) Len() int {
	return c.items.Len()
}

// Close stops the expiry loop. It is safe to call more than once.
func (c *Cache) Close() {
	c.closeOnce.Do(c.items.Stop)
}

var _ domain.Cache = (*Cache)(nil)
