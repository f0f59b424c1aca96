package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotCacheGetSet(t *testing.T) {
	c := NewSnapshotCache[int](time.Minute)

	_, hit := c.Get("a")
	assert.False(t, hit)

	c.Set("a", 42)
	got, hit := c.Get("a")
	assert.True(t, hit)
	assert.Equal(t, 42, got)
}

func TestSnapshotCacheExpiry(t *testing.T) {
	c := NewSnapshotCache[string](10 * time.Millisecond)

	c.Set("a", "fresh")
	time.Sleep(25 * time.Millisecond)

	_, hit := c.Get("a")
	assert.False(t, hit)
}

func TestSnapshotCacheInvalidateAndClear(t *testing.T) {
	c := NewSnapshotCache[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	_, hit := c.Get("a")
	assert.False(t, hit)
	_, hit = c.Get("b")
	assert.True(t, hit)

	c.Clear()
	_, hit = c.Get("b")
	assert.False(t, hit)
	assert.Equal(t, 0, c.Stats()["entries"])
}
