package sim

import (
	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/routing"
	"github.com/go-dtn/go-moby/lib/trust"
)

// transfer is one in-flight payload on a connection's single slot.
type transfer struct {
	msg       *message.Message
	from, to  *Host
	remaining float64 // bytes left to move
}

// Connection links two hosts currently in radio range. It stores the two
// endpoint handles, carries at most one transfer at a time, and is torn down
// by the world when the contact ends.
type Connection struct {
	a, b *Host
	// speed is the transfer rate in bytes per simulated second.
	speed float64
	// expires is the simulated time the contact ends.
	expires float64
	// acceptSending is the engine's send-acceptance policy hook; nil accepts
	// everything.
	acceptSending func(from, to *Host, m *message.Message) bool

	inflight *transfer
}

func newConnection(a, b *Host, speed, expires float64,
	accept func(from, to *Host, m *message.Message) bool) *Connection {
	return &Connection{a: a, b: b, speed: speed, expires: expires, acceptSending: accept}
}

// routing.Conn implementation.

func (c *Connection) Peer(local trust.Peer) trust.Peer {
	if c.a.Name() == local.Name() {
		return c.b
	}
	return c.a
}

func (c *Connection) Ready() bool {
	return c.inflight == nil
}

func (c *Connection) Busy() bool {
	return c.inflight != nil
}

// StartTransfer is the connection's one mutation point for the protocol: it
// either occupies the payload slot or reports synchronously why not.
func (c *Connection) StartTransfer(from trust.Peer, m *message.Message) routing.TransferResult {
	if c.inflight != nil {
		return routing.TransferBusy
	}

	sender := c.endpoint(from.Name())
	receiver := c.other(sender)

	if c.acceptSending != nil && !c.acceptSending(sender, receiver, m) {
		return routing.TransferDeniedPolicy
	}
	// The receiver already has this message, either buffer-resident or as its
	// final recipient. Denying upfront keeps the payload slot free instead of
	// carrying a copy that admission would suppress anyway.
	if receiver.router.Buffer().Has(m.ID) ||
		(m.To == receiver.Name() && receiver.HasDelivered(m.ID)) {
		return routing.TransferDeniedDelivered
	}

	c.inflight = &transfer{
		msg:       m.Copy(),
		from:      sender,
		to:        receiver,
		remaining: float64(m.Size),
	}
	return routing.TransferStarted
}

// progress moves the in-flight payload forward by dt simulated seconds and
// delivers it on completion.
func (c *Connection) progress(dt float64, events *Counters) {
	if c.inflight == nil {
		return
	}
	c.inflight.remaining -= c.speed * dt
	if c.inflight.remaining > 0 {
		return
	}
	t := c.inflight
	c.inflight = nil
	events.Relayed++
	t.to.receiveMessage(t.msg, t.from)
}

// abort drops the in-flight payload, if any, when the contact ends early.
func (c *Connection) abort(events *Counters) {
	if c.inflight == nil {
		return
	}
	c.inflight = nil
	events.Aborted++
}

func (c *Connection) endpoint(name string) *Host {
	if c.a.Name() == name {
		return c.a
	}
	return c.b
}

func (c *Connection) other(h *Host) *Host {
	if c.a == h {
		return c.b
	}
	return c.a
}
