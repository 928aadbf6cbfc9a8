package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelNameCache_New(t *testing.T) {
	c := NewModelNameCache()

	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestModelNameCache_SetAndGet(t *testing.T) {
	c := NewModelNameCache()

	c.Set(0xB779A091, "adder")

	got, ok := c.Get(0xB779A091)
	require.True(t, ok, "expected to find adder")
	assert.Equal(t, "adder", got)

	_, ok = c.Get(0xDEADBEEF)
	assert.False(t, ok, "expected not to find unknown hash")
}

func TestModelNameCache_AddNames(t *testing.T) {
	c := NewModelNameCache()

	n := c.AddNames([]string{"adder", " buzzard ", "", "   "})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, c.Len())

	got, ok := c.Get(0x2F03547B)
	require.True(t, ok, "expected buzzard by hash")
	assert.Equal(t, "buzzard", got)
}

func TestModelNameCache_DeleteAndReset(t *testing.T) {
	c := NewModelNameCache()
	c.AddNames([]string{"adder", "buzzard"})

	c.Delete(0xB779A091)
	_, ok := c.Get(0xB779A091)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())

	// Verify we can still add data after reset
	c.Set(1, "one")
	_, ok = c.Get(1)
	assert.True(t, ok, "expected to find name added after reset")
}

func TestModelNameCache_Concurrent(t *testing.T) {
	c := NewModelNameCache()
	var wg sync.WaitGroup

	for i := uint32(0); i < 100; i++ {
		wg.Add(2)
		go func(h uint32) {
			defer wg.Done()
			c.Set(h, "model")
		}(i)
		go func(h uint32) {
			defer wg.Done()
			c.Get(h)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Len())
}

// SafeCounter tests

func TestSafeCounter_InitialValue(t *testing.T) {
	c := &SafeCounter{}
	assert.Equal(t, int(0), c.Value())
}

func TestSafeCounter_Set(t *testing.T) {
	c := &SafeCounter{}

	c.Set(42)
	assert.Equal(t, int(42), c.Value())

	c.Set(0)
	assert.Equal(t, int(0), c.Value())
}

func TestSafeCounter_Inc(t *testing.T) {
	c := &SafeCounter{}

	c.Inc()
	assert.Equal(t, int(1), c.Value())

	c.Inc()
	c.Inc()
	assert.Equal(t, int(3), c.Value())
}

func TestSafeCounter_Concurrent(t *testing.T) {
	c := &SafeCounter{}
	var wg sync.WaitGroup

	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()

	assert.Equal(t, int(1000), c.Value())
}
