// Package message defines the message value carried between hosts and the
// TTL randomization applied at creation time.
package message

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes protocol-managed messages from generic traffic.
type Kind int

const (
	KindGeneric Kind = iota
	KindMoby
)

func (k Kind) String() string {
	if k == KindMoby {
		return "Moby"
	}
	return "generic"
}

// Message is one unit of traffic. Each host in the network holds its own
// copy; Priority and ForwarderPriority are re-evaluated per holder, Hops is
// append-only, TTL only ever decreases.
type Message struct {
	ID      string
	From    string
	To      string
	Size    int
	Created float64 // simulated seconds
	Kind    Kind

	// TTL is the remaining lifetime in minutes, decremented by the engine.
	// A message with TTL <= 0 is eligible for removal.
	TTL int

	// Hops is the ordered path of hosts this copy has visited, starting with
	// the creator.
	Hops []string

	// Priority is the holder's forwarding priority for this copy, recomputed
	// every time the message is evaluated by a receiving host.
	Priority float64

	// ForwarderPriority is the priority asserted by the previous holder when
	// it offered the message onward. Zero when never stamped.
	ForwarderPriority float64
}

// New creates a message originating at from. The creator is the first entry
// of the hop path.
func New(id, from, to string, size int, created float64) *Message {
	return &Message{
		ID:      id,
		From:    from,
		To:      to,
		Size:    size,
		Created: created,
		Hops:    []string{from},
	}
}

// NewID returns a fresh globally unique message identifier.
func NewID() string {
	return uuid.NewString()
}

// Copy returns an independent copy for handing to another host. The receiving
// side appends itself to the hop path and recomputes the priority.
func (m *Message) Copy() *Message {
	c := *m
	c.Hops = make([]string, len(m.Hops))
	copy(c.Hops, m.Hops)
	return &c
}

// LastHop returns the most recent holder of this copy.
func (m *Message) LastHop() string {
	return m.Hops[len(m.Hops)-1]
}

// AddHop appends a host to the path. Called by the engine when a transfer
// completes.
func (m *Message) AddHop(host string) {
	m.Hops = append(m.Hops, host)
}

// Expired reports whether the remaining lifetime is used up.
func (m *Message) Expired() bool {
	return m.TTL <= 0
}

func (m *Message) String() string {
	return fmt.Sprintf("%s[%s->%s]", m.ID, m.From, m.To)
}
