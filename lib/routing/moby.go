package routing

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/go-dtn/go-moby/lib/buffer"
	"github.com/go-dtn/go-moby/lib/config"
	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/trust"
	"github.com/go-dtn/go-moby/lib/util/logger"
)

var log = logger.GetLogger()

func init() {
	Register("moby", NewMobyRouter)
}

// MobyRouter is the trust-weighted epidemic router. Per tick it selects the
// most trustworthy subset of reachable connections and offers its whole
// queue to each of them, draining every contact opportunity to
// busy-or-exhaustion. The tick itself is stateless: everything that persists
// lives in the buffer, the trust store and the forwarded-message cache.
type MobyRouter struct {
	host HostAPI

	maxConns        int
	ttlMean         int // seconds
	ttlStdDev       int // seconds
	queueMode       string
	deleteDelivered bool

	engine   *trust.Engine
	selector *Selector
	model    buffer.PriorityModel
	buf      *buffer.Buffer
	fwd      *buffer.ForwardedCache
	policy   *buffer.Policy

	// limiter is the forwarding rate-limit extension point. It defaults to
	// rate.Inf, so forwarding is always permitted unless a limit is armed in
	// the settings.
	limiter *rate.Limiter

	// sending tracks connections carrying a transfer this host started,
	// keyed to the in-flight message id.
	sending map[Conn]string

	stats Stats
}

// NewMobyRouter builds a Moby router bound to host from the shared group
// configuration.
func NewMobyRouter(cfg *config.Config, host HostAPI) Router {
	engine := trust.NewEngine(
		trust.Weights{
			Alpha: cfg.Moby.TrustWeightMobyContacts,
			Beta:  cfg.Moby.TrustWeightNonMobyContacts,
			Gamma: cfg.Moby.TrustWeightCommunications,
		},
		trust.Caps{
			MobyContacts:    cfg.Moby.MaxMobyContacts,
			NonMobyContacts: cfg.Moby.MaxNonMobyContacts,
		},
	)
	model := buffer.NewPriorityModel(cfg.Moby.MaxTTLMinutes())
	buf := buffer.New(cfg.Scenario.BufferSize)
	fwd := buffer.NewForwardedCache(float64(cfg.Moby.RememberForwarded))

	limit := rate.Inf
	if cfg.Moby.ForwardRateLimit > 0 {
		limit = rate.Limit(cfg.Moby.ForwardRateLimit)
	}

	r := &MobyRouter{
		host:            host,
		maxConns:        cfg.Moby.MaxConnectionsForForward,
		ttlMean:         cfg.Moby.TTLMeanTime,
		ttlStdDev:       cfg.Moby.TTLStdDevTime,
		queueMode:       cfg.Scenario.QueueMode,
		deleteDelivered: cfg.Scenario.DeleteDelivered,
		engine:          engine,
		selector:        NewSelector(engine),
		model:           model,
		buf:             buf,
		fwd:             fwd,
		limiter:         rate.NewLimiter(limit, 1),
		sending:         make(map[Conn]string),
	}
	r.policy = buffer.NewPolicy(
		host.Name(), buf, fwd, model,
		func(contact string) float64 { return engine.Score(host, contact) },
		func(sender string) { host.TrustStore().RecordCommunication(sender) },
	)
	return r
}

// Update runs one scheduling tick: sweep the forwarded cache, finalize
// finished transfers, then (unless mid-transfer or rate-limited) select
// connections and run the exhaustive transfer loop.
func (r *MobyRouter) Update() {
	now := r.host.Now()
	r.fwd.Sweep(now)
	r.finalizeTransfers()

	if !r.allowForward(now) {
		return
	}
	if r.isTransferring() || !r.canStartTransfer() {
		return
	}

	cons := r.host.Connections()
	if len(cons) > r.maxConns {
		cons = r.selector.Select(cons, r.host, r.maxConns)
	}
	r.tryAllMessagesToConnections(cons, now)
}

// finalizeTransfers drops watch-list connections whose payload slot has been
// freed, whether the transfer completed or the connection went down.
func (r *MobyRouter) finalizeTransfers() {
	for con, id := range r.sending {
		if !con.Busy() {
			delete(r.sending, con)
			r.buf.ClearSending(id)
		}
	}
}

func (r *MobyRouter) isTransferring() bool {
	return len(r.sending) > 0
}

func (r *MobyRouter) canStartTransfer() bool {
	return r.buf.Len() > 0 && len(r.host.Connections()) > 0
}

// allowForward consults the rate limiter against simulated time.
func (r *MobyRouter) allowForward(now float64) bool {
	return r.limiter.AllowN(simEpoch.Add(time.Duration(now*float64(time.Second))), 1)
}

// simEpoch anchors simulated seconds onto the absolute timeline the rate
// limiter expects.
var simEpoch = time.Unix(0, 0)

// tryAllMessagesToConnections offers the ordered queue snapshot to every
// selected connection. It deliberately does not stop after the first
// successful transfer on a connection, nor after the first connection that
// accepts something.
func (r *MobyRouter) tryAllMessagesToConnections(cons []Conn, now float64) {
	msgs := r.outgoingSnapshot()
	if len(msgs) == 0 {
		return
	}
	for _, con := range cons {
		r.tryAllMessages(con, msgs, now)
	}
}

// outgoingSnapshot orders the buffer contents by the configured queue mode
// and stamps each message's forwarder priority with its current priority, so
// the receiving side's admission decision can see the sender's belief about
// the message's importance.
func (r *MobyRouter) outgoingSnapshot() []*message.Message {
	msgs := r.buf.Snapshot() // receive order
	if r.queueMode == config.QueueModePriority {
		// Stable: equal priorities keep receive order.
		sortByPriorityDesc(msgs)
	}
	for _, m := range msgs {
		m.ForwarderPriority = m.Priority
	}
	return msgs
}

// tryAllMessages attempts every message in the working set on con until the
// connection reports busy or the set is exhausted.
func (r *MobyRouter) tryAllMessages(con Conn, msgs []*message.Message, now float64) {
	working := make([]*message.Message, len(msgs))
	copy(working, msgs)

	for len(working) > 0 {
		m := working[0]
		switch r.startTransfer(m, con, now) {
		case TransferStarted:
			r.stats.TransfersStarted++
			working = working[1:]
		case TransferDeniedPolicy:
			r.stats.DeniedPolicy++
			working = working[1:]
		case TransferDeniedDelivered:
			r.stats.DeniedDelivered++
			working = working[1:]
		case TransferBusy:
			r.stats.BusyEncounters++
			return
		}
	}
}

// startTransfer makes one transfer attempt of m on con and applies the
// protocol side effects of the outcome.
func (r *MobyRouter) startTransfer(m *message.Message, con Conn, now float64) TransferResult {
	if !con.Ready() {
		return TransferBusy
	}

	res := con.StartTransfer(r.host, m)
	switch res {
	case TransferStarted:
		if _, watched := r.sending[con]; !watched {
			r.sending[con] = m.ID
		}
		r.buf.MarkSending(m.ID)
		r.fwd.Mark(m.ID, now)
	case TransferDeniedDelivered:
		// Drop our copy only when the denial came from the final recipient,
		// not from a relay that merely holds a duplicate.
		if r.deleteDelivered && m.To == con.Peer(r.host).Name() {
			r.buf.Remove(m.ID)
			r.stats.DeletedDelivered++
			log.WithField("msg", m.ID).Debug("deleted delivered message")
		}
	}
	return res
}

// CreateMessage buffers a locally originated message. Creating a message is
// itself a communication toward the destination, so the counter is bumped
// before the TTL randomization, which runs last so no base-layer assignment
// can overwrite it. Locally created messages are always admitted if they can
// fit, evicting lower-priority relayed traffic as needed.
func (r *MobyRouter) CreateMessage(m *message.Message) bool {
	m.Kind = message.KindMoby
	r.host.TrustStore().RecordCommunication(m.To)
	message.RandomizeTTL(m, r.ttlMean, r.ttlStdDev, r.host.RNG())

	if _, ok := r.buf.MakeRoom(m.Size); !ok {
		log.WithField("msg", m.ID).Warn("created message larger than buffer")
		return false
	}
	r.buf.Add(m)
	return true
}

// Receive runs the admission policy on a message delivered by the engine.
func (r *MobyRouter) Receive(m *message.Message, from string) (buffer.Verdict, []*message.Message) {
	return r.policy.Admit(m, from)
}

func (r *MobyRouter) Buffer() *buffer.Buffer {
	return r.buf
}

func (r *MobyRouter) Stats() Stats {
	return r.stats
}

func sortByPriorityDesc(msgs []*message.Message) {
	// Insertion sort keeps the receive-order tie-break without pulling in a
	// comparator allocation per call; queues are small.
	for i := 1; i < len(msgs); i++ {
		for j := i; j > 0 && msgs[j].Priority > msgs[j-1].Priority; j-- {
			msgs[j], msgs[j-1] = msgs[j-1], msgs[j]
		}
	}
}
