package sim

import (
	"math/rand"
	"strconv"

	"github.com/go-dtn/go-moby/lib/buffer"
	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/routing"
	"github.com/go-dtn/go-moby/lib/trust"
)

// HostID is a stable handle into the world's host arena.
type HostID int

// Host is one mobile node: its identity, trust state, router and live
// connections. All of it is owned exclusively by the host and mutated only
// during the host's own tick, except the symmetric trust operations the
// protocol defines.
type Host struct {
	id   HostID
	name string
	ctx  *Context

	store    *trust.Store
	contacts *trust.ContactTable
	rng      *rand.Rand
	router   routing.Router

	conns     []*Connection
	delivered map[string]struct{}

	// lastTTLAge is the last simulated time TTL aging ran; aging happens on
	// whole-minute boundaries.
	lastTTLAge float64
}

func newHost(id HostID, name string, ctx *Context, store *trust.Store,
	contacts *trust.ContactTable, seed int64) *Host {
	return &Host{
		id:        id,
		name:      name,
		ctx:       ctx,
		store:     store,
		contacts:  contacts,
		rng:       rand.New(rand.NewSource(seed)),
		delivered: make(map[string]struct{}),
	}
}

// trust.Peer implementation.

func (h *Host) Name() string                  { return h.name }
func (h *Host) TrustStore() *trust.Store      { return h.store }
func (h *Host) Contacts() *trust.ContactTable { return h.contacts }
func (h *Host) RNG() *rand.Rand               { return h.rng }

// routing.HostAPI implementation.

func (h *Host) Now() float64 {
	return h.ctx.Clock.Now()
}

func (h *Host) Connections() []routing.Conn {
	out := make([]routing.Conn, len(h.conns))
	for i, c := range h.conns {
		out[i] = c
	}
	return out
}

func (h *Host) ID() HostID { return h.id }

func (h *Host) Router() routing.Router { return h.router }

// HasDelivered reports whether this host, as final recipient, has already
// received the message.
func (h *Host) HasDelivered(id string) bool {
	_, ok := h.delivered[id]
	return ok
}

// Update is the per-tick hook: age TTLs on minute boundaries, then run the
// router's tick.
func (h *Host) Update() {
	now := h.ctx.Clock.Now()
	if minutes := int((now - h.lastTTLAge) / 60); minutes >= 1 {
		expired := h.router.Buffer().AgeTTL(minutes)
		h.ctx.Events.DroppedTTLExpired += len(expired)
		h.lastTTLAge += float64(minutes * 60)
	}
	h.router.Update()
}

// CreateMessage originates a new message at this host.
func (h *Host) CreateMessage(to string, size int) *message.Message {
	m := message.New(message.NewID(), h.name, to, size, h.ctx.Clock.Now())
	if !h.router.CreateMessage(m) {
		return nil
	}
	h.ctx.Events.Created++
	return m
}

// receiveMessage runs the admission path when a transfer completes. The
// receiving host joins the hop path first; the forwarder's identity is passed
// separately for the trust lookup.
func (h *Host) receiveMessage(m *message.Message, from *Host) {
	m.AddHop(h.name)
	verdict, evicted := h.router.Receive(m, from.name)
	h.ctx.Events.Evicted += len(evicted)

	switch verdict {
	case buffer.Admitted:
		if m.To == h.name {
			if _, dup := h.delivered[m.ID]; !dup {
				h.delivered[m.ID] = struct{}{}
				h.ctx.Events.Delivered++
			}
		}
	case buffer.DuplicateSuppressed:
		h.ctx.Events.DuplicateSuppressed++
	case buffer.DroppedTTLExceeded:
		h.ctx.Events.DroppedTTLExceeded++
	case buffer.DroppedLowPriority:
		h.ctx.Events.DroppedLowPriority++
	}
}

func (h *Host) addConnection(c *Connection) {
	h.conns = append(h.conns, c)
}

func (h *Host) removeConnection(c *Connection) {
	for i, existing := range h.conns {
		if existing == c {
			h.conns = append(h.conns[:i], h.conns[i+1:]...)
			return
		}
	}
}

// hostName builds the canonical host name from a group id and index, the
// same form the trust dataset uses for Moby contact ids.
func hostName(groupID string, index int) string {
	return groupID + strconv.Itoa(index)
}
