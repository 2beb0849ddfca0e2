package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/routing"
	"github.com/go-dtn/go-moby/lib/trust"
)

func newTestHost(t *testing.T, ctx *Context, id int) *Host {
	t.Helper()
	factory, err := routing.Lookup("moby")
	require.NoError(t, err)
	h := newHost(HostID(id), hostName("p", id), ctx,
		trust.NewStore(), trust.NewContactTable(nil), int64(id)+1)
	h.router = factory(ctx.Config, h)
	return h
}

func relayable(id, from, to string, size int) *message.Message {
	m := message.New(id, from, to, size, 0)
	m.TTL = 100
	return m
}

func TestConnectionTransferDelivers(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)
	c := newConnection(a, b, 100, 1000, nil)

	m := relayable("m1", "p0", "p1", 250)
	require.Equal(t, routing.TransferStarted, c.StartTransfer(a, m))
	assert.True(t, c.Busy())

	c.progress(1, ctx.Events) // 150 bytes left
	c.progress(1, ctx.Events) // 50 bytes left
	assert.False(t, b.router.Buffer().Has("m1"))

	c.progress(1, ctx.Events)
	assert.False(t, c.Busy())
	assert.Equal(t, 1, ctx.Events.Relayed)
	assert.Equal(t, 1, ctx.Events.Delivered)

	resident, ok := b.router.Buffer().Get("m1")
	require.True(t, ok)
	// The payload was copied at transfer start; the sender's copy is separate.
	assert.NotSame(t, m, resident)
	assert.Equal(t, []string{"p0", "p1"}, resident.Hops)

	assert.True(t, b.HasDelivered("m1"))
	// Final delivery records a communication with the creator.
	assert.Equal(t, 1, b.TrustStore().Element("p0").Communications)
}

func TestConnectionSinglePayloadSlot(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)
	c := newConnection(a, b, 100, 1000, nil)

	require.Equal(t, routing.TransferStarted, c.StartTransfer(a, relayable("m1", "p0", "p1", 500)))
	assert.Equal(t, routing.TransferBusy, c.StartTransfer(a, relayable("m2", "p0", "p1", 500)))
}

func TestConnectionAbortDropsPayload(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)
	c := newConnection(a, b, 100, 1000, nil)

	require.Equal(t, routing.TransferStarted, c.StartTransfer(a, relayable("m1", "p0", "p1", 500)))
	c.abort(ctx.Events)

	assert.True(t, c.Ready())
	assert.Equal(t, 1, ctx.Events.Aborted)
	assert.False(t, b.router.Buffer().Has("m1"))
}

func TestConnectionDeniesAlreadyDelivered(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)
	c := newConnection(a, b, 100, 1000, nil)
	b.delivered["m1"] = struct{}{}

	res := c.StartTransfer(a, relayable("m1", "p0", "p1", 500))
	assert.Equal(t, routing.TransferDeniedDelivered, res)
	assert.True(t, c.Ready())
}

func TestConnectionDeniesBufferResidentCopy(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)
	c := newConnection(a, b, 100, 1000, nil)

	// b already carries a copy as a relay, not as final recipient.
	held := relayable("m1", "p0", "p5", 500)
	require.True(t, b.router.Buffer().Add(held))

	res := c.StartTransfer(a, relayable("m1", "p0", "p5", 500))
	assert.Equal(t, routing.TransferDeniedDelivered, res)
	// The payload slot is not burned on a doomed transfer.
	assert.True(t, c.Ready())
}

func TestConnectionAcceptSendingHook(t *testing.T) {
	ctx := NewContext(baseConfig())
	a := newTestHost(t, ctx, 0)
	b := newTestHost(t, ctx, 1)
	c := newConnection(a, b, 100, 1000,
		func(from, to *Host, m *message.Message) bool { return false })

	res := c.StartTransfer(a, relayable("m1", "p0", "p1", 500))
	assert.Equal(t, routing.TransferDeniedPolicy, res)
	assert.True(t, c.Ready())
}
