package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dtn/go-moby/lib/message"
)

func TestHostAgesTTLOnMinuteBoundaries(t *testing.T) {
	ctx := NewContext(baseConfig())
	h := newTestHost(t, ctx, 0)

	m := message.New("m1", "p0", "p9", 100, 0)
	m.TTL = 2
	require.True(t, h.router.Buffer().Add(m))

	ctx.Clock.Advance(59)
	h.Update()
	assert.Equal(t, 2, m.TTL, "no aging inside the first minute")

	ctx.Clock.Advance(1)
	h.Update()
	assert.Equal(t, 1, m.TTL)

	ctx.Clock.Advance(120)
	h.Update()
	assert.False(t, h.router.Buffer().Has("m1"))
	assert.Equal(t, 1, ctx.Events.DroppedTTLExpired)
}

func TestHostCreateMessageCounts(t *testing.T) {
	ctx := NewContext(baseConfig())
	h := newTestHost(t, ctx, 0)

	m := h.CreateMessage("p9", 100)
	require.NotNil(t, m)
	assert.Equal(t, 1, ctx.Events.Created)
	assert.True(t, h.router.Buffer().Has(m.ID))

	// A message that cannot fit is not counted.
	assert.Nil(t, h.CreateMessage("p9", ctx.Config.Scenario.BufferSize+1))
	assert.Equal(t, 1, ctx.Events.Created)
}

func TestHostDeliveredCountedOnce(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)

	m := message.New("m1", "p0", "p1", 100, 0)
	m.TTL = 100
	b.receiveMessage(m, a)
	assert.Equal(t, 1, ctx.Events.Delivered)

	// The resident copy suppresses the duplicate; no double count.
	dup := message.New("m1", "p0", "p1", 100, 0)
	dup.TTL = 100
	b.receiveMessage(dup, a)
	assert.Equal(t, 1, ctx.Events.Delivered)
	assert.Equal(t, 1, ctx.Events.DuplicateSuppressed)
}

func TestHostNames(t *testing.T) {
	assert.Equal(t, "p0", hostName("p", 0))
	assert.Equal(t, "q17", hostName("q", 17))
}
