package routing

import (
	"github.com/go-dtn/go-moby/lib/buffer"
	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/trust"
)

// TransferResult is the synchronous outcome of one message/connection
// transfer attempt. None of these are errors; Busy in particular is a
// retry-next-tick signal, not a wait.
type TransferResult int

const (
	// TransferStarted: the connection accepted the message into its payload
	// slot.
	TransferStarted TransferResult = iota
	// TransferDeniedPolicy: the send-acceptance policy refused the pairing;
	// do not retry this tick.
	TransferDeniedPolicy
	// TransferDeniedDelivered: the peer already has this message, as a
	// buffer-resident copy or as its final recipient.
	TransferDeniedDelivered
	// TransferBusy: the connection's payload slot is occupied; stop trying
	// this connection for this tick.
	TransferBusy
)

func (r TransferResult) String() string {
	switch r {
	case TransferStarted:
		return "started"
	case TransferDeniedPolicy:
		return "denied-policy"
	case TransferDeniedDelivered:
		return "denied-delivered"
	case TransferBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Conn is the router's view of a live connection to a peer in radio range.
// A connection has a single payload slot: at most one in-flight transfer at
// a time.
type Conn interface {
	// Peer returns the endpoint opposite to local.
	Peer(local trust.Peer) trust.Peer
	// Ready reports whether the connection can accept a new transfer.
	Ready() bool
	// Busy reports whether a transfer is currently occupying the payload
	// slot.
	Busy() bool
	// StartTransfer offers m from the given holder. The payload is copied;
	// delivery happens when the engine completes the transfer.
	StartTransfer(from trust.Peer, m *message.Message) TransferResult
}

// HostAPI is the engine surface a router runs against: host identity and
// trust state (via trust.Peer), the current connection set, and simulated
// time.
type HostAPI interface {
	trust.Peer
	Connections() []Conn
	Now() float64
}

// Router is the per-host protocol instance driven by the engine, one Update
// per tick, strictly sequential across hosts.
type Router interface {
	// Update runs one scheduling tick.
	Update()
	// CreateMessage takes ownership of a locally originated message,
	// randomizes its TTL and buffers it. Returns false if the message cannot
	// fit at all.
	CreateMessage(m *message.Message) bool
	// Receive runs the admission policy on a message arriving from a peer,
	// returning the verdict and any messages evicted to make room.
	Receive(m *message.Message, from string) (buffer.Verdict, []*message.Message)
	// Buffer exposes the message store for TTL aging and reporting.
	Buffer() *buffer.Buffer
	// Stats returns the router's transfer counters.
	Stats() Stats
}

// Stats are cumulative per-router transfer counters, for reporting only.
type Stats struct {
	TransfersStarted int `yaml:"transfersStarted"`
	DeniedPolicy     int `yaml:"deniedPolicy"`
	DeniedDelivered  int `yaml:"deniedDelivered"`
	BusyEncounters   int `yaml:"busyEncounters"`
	DeletedDelivered int `yaml:"deletedDelivered"`
}
