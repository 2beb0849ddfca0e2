package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndHas(t *testing.T) {
	c := NewForwardedCache(3600)
	assert.False(t, c.Has("m1"))
	c.Mark("m1", 100)
	assert.True(t, c.Has("m1"))
}

func TestMarkIsIdempotent(t *testing.T) {
	c := NewForwardedCache(100)
	c.Mark("m1", 0)
	// A later re-mark must not extend the original expiry.
	c.Mark("m1", 90)
	assert.Equal(t, 1, c.Sweep(101))
	assert.False(t, c.Has("m1"))
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	c := NewForwardedCache(100)
	c.Mark("old", 0)    // expires at 100
	c.Mark("new", 150)  // expires at 250
	assert.Equal(t, 1, c.Sweep(200))
	assert.False(t, c.Has("old"))
	assert.True(t, c.Has("new"))
	assert.Equal(t, 1, c.Len())
}

func TestLookupDoesNotPurge(t *testing.T) {
	c := NewForwardedCache(10)
	c.Mark("m1", 0)
	// Expired but unswept entries still read as forwarded; sweep is advisory
	// cleanup, not a correctness dependency.
	assert.True(t, c.Has("m1"))
	c.Sweep(100)
	assert.False(t, c.Has("m1"))
}
