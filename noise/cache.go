package noise

import "sync"

// Cache builds its volume on first use and returns the same instance after.
type Cache struct {
	builder Builder
	once    sync.Once
	vol     *Volume
}

// NewCache creates a cache for the volume described by b.
func NewCache(b Builder) *Cache {
	return &Cache{builder: b}
}

// Volume returns the shared volume, building it if needed.
func (c *Cache) Volume() *Volume {
	c.once.Do(func() {
		c.vol = c.builder.Build()
	})
	return c.vol
}

// Builder returns the parameters the cache was created with.
func (c *Cache) Builder() Builder { return c.builder }
