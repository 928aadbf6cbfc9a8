package cache

import (
	"strings"
	"sync"

	"github.com/dynfpv/extension/internal/util"
)

// ModelNameCache maps vehicle model hashes to display names. It is filled
// from the host's model list and read when saving configs and logging.
type ModelNameCache struct {
	mu    sync.RWMutex
	names map[uint32]string
}

// NewModelNameCache creates an empty ModelNameCache
func NewModelNameCache() *ModelNameCache {
	return &ModelNameCache{
		names: make(map[uint32]string),
	}
}

// Get returns the name for a model hash
func (c *ModelNameCache) Get(hash uint32) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[hash]
	return name, ok
}

// Set stores a name for a model hash
func (c *ModelNameCache) Set(hash uint32, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[hash] = name
}

// AddNames hashes each model name and stores it. Blank names are skipped.
// It returns the number of names added.
func (c *ModelNameCache) AddNames(names []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c.names[util.Joaat(name)] = name
		n++
	}
	return n
}

// Delete removes a model hash
func (c *ModelNameCache) Delete(hash uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.names, hash)
}

// Len returns the number of cached names
func (c *ModelNameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}

// Reset clears all names from the cache
func (c *ModelNameCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = make(map[uint32]string)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
