package meshgen

import (
	"sync"

	"github.com/gogpu/soft3d/geom"
	"github.com/gogpu/soft3d/mesh"
)

// Key identifies a tessellated solid.
type Key struct {
	Shape string
	Size  geom.Vec3
	Round float32
	Cells int
}

// CacheStats reports cache usage.
type CacheStats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// Cache keeps recently tessellated solids so repeated requests skip
// marching cubes. Meshes are immutable and may be shared by any number of
// drawables.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*cacheEntry
	limit   int
	tick    int64
	hits    uint64
	misses  uint64
}

type cacheEntry struct {
	m     *mesh.Mesh
	atime int64
}

// NewCache returns a cache holding at most limit meshes. A limit of 0
// means unlimited.
func NewCache(limit int) *Cache {
	return &Cache{
		entries: make(map[Key]*cacheEntry),
		limit:   limit,
	}
}

// Sphere is like the package-level Sphere but cached.
func (c *Cache) Sphere(r float32, cells int) (*mesh.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	key := Key{Shape: "sphere", Size: geom.V3(r, r, r), Cells: cells}
	return c.get(key, func() (*mesh.Mesh, error) { return Sphere(r, cells) })
}

// Box is like the package-level Box but cached.
func (c *Cache) Box(size geom.Vec3, round float32, cells int) (*mesh.Mesh, error) {
	if cells <= 0 {
		cells = DefaultCells
	}
	key := Key{Shape: "box", Size: size, Round: round, Cells: cells}
	return c.get(key, func() (*mesh.Mesh, error) { return Box(size, round, cells) })
}

// get returns the cached mesh for key or builds it under the lock. Build
// errors are not cached.
func (c *Cache) get(key Key, build func() (*mesh.Mesh, error)) (*mesh.Mesh, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		c.hits++
		return e.m, nil
	}
	c.misses++

	m, err := build()
	if err != nil {
		return nil, err
	}
	c.entries[key] = &cacheEntry{m: m, atime: c.tick}
	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictOldest()
	}
	return m, nil
}

// evictOldest drops the least recently used entry. Caller holds c.mu.
func (c *Cache) evictOldest() {
	var (
		oldest Key
		atime  int64 = -1
	)
	for k, e := range c.entries {
		if atime < 0 || e.atime < atime {
			oldest, atime = k, e.atime
		}
	}
	delete(c.entries, oldest)
}

// Stats returns the current size and hit counts.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Len: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// Clear drops all entries. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*cacheEntry)
}
