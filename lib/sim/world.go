package sim

import (
	"math/rand"
	"sync"

	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/routing"
	"github.com/go-dtn/go-moby/lib/util/logger"
)

var log = logger.GetLogger()

// World owns the host and connection arenas and drives the tick loop. One
// Update advances the clock, refreshes connectivity, progresses in-flight
// transfers, generates traffic and then updates every host strictly
// sequentially.
//
// The mutex exists only for the introspection endpoint: the tick itself is
// single-threaded.
type World struct {
	mu  sync.Mutex
	ctx *Context

	hosts []*Host
	conns []*Connection
	// linked tracks connected pairs by host handles, low handle first.
	linked map[[2]HostID]*Connection

	// rng drives connectivity and traffic destination draws, independent of
	// the hosts' private generators.
	rng *rand.Rand

	// AcceptSending is the send-acceptance policy hook consulted before a
	// transfer starts. Nil accepts everything.
	AcceptSending func(from, to *Host, m *message.Message) bool

	// nextCreate is the per-host next traffic generation time.
	nextCreate []float64
}

func newWorld(ctx *Context, hosts []*Host, rng *rand.Rand) *World {
	w := &World{
		ctx:        ctx,
		hosts:      hosts,
		linked:     make(map[[2]HostID]*Connection),
		rng:        rng,
		nextCreate: make([]float64, len(hosts)),
	}
	interval := ctx.Config.Scenario.MsgInterval
	if interval > 0 {
		// Desynchronize the first messages so hosts don't all create at once.
		for i := range w.nextCreate {
			w.nextCreate[i] = rng.Float64() * interval
		}
	}
	return w
}

// Hosts returns the host arena in handle order.
func (w *World) Hosts() []*Host {
	return w.hosts
}

// Now returns the current simulated time in seconds.
func (w *World) Now() float64 {
	return w.ctx.Clock.Now()
}

// Done reports whether the simulated end time has been reached.
func (w *World) Done() bool {
	return w.ctx.Clock.Now() >= w.ctx.Config.Scenario.EndTime
}

// Update runs one tick.
func (w *World) Update() {
	w.mu.Lock()
	defer w.mu.Unlock()

	dt := w.ctx.Config.Scenario.UpdateInterval
	w.ctx.Clock.Advance(dt)
	now := w.ctx.Clock.Now()

	w.updateConnectivity(now)
	for _, c := range w.conns {
		c.progress(dt, w.ctx.Events)
	}
	w.generateTraffic(now)

	for _, h := range w.hosts {
		h.Update()
	}
}

// Run ticks until the end time or until stop is closed.
func (w *World) Run(stop <-chan struct{}) {
	for !w.Done() {
		select {
		case <-stop:
			log.WithField("t", w.Now()).Debug("run interrupted")
			return
		default:
		}
		w.Update()
	}
}

// updateConnectivity tears down expired contacts and establishes new ones.
// The contact process is memoryless: each disconnected pair comes into range
// with the configured per-tick probability and stays connected for the
// configured duration.
func (w *World) updateConnectivity(now float64) {
	keep := w.conns[:0]
	for _, c := range w.conns {
		if c.expires <= now {
			c.abort(w.ctx.Events)
			c.a.removeConnection(c)
			c.b.removeConnection(c)
			delete(w.linked, pairKey(c.a.id, c.b.id))
			continue
		}
		keep = append(keep, c)
	}
	w.conns = keep

	scen := &w.ctx.Config.Scenario
	if scen.ContactProb <= 0 {
		return
	}
	for i := 0; i < len(w.hosts); i++ {
		for j := i + 1; j < len(w.hosts); j++ {
			a, b := w.hosts[i], w.hosts[j]
			if _, up := w.linked[pairKey(a.id, b.id)]; up {
				continue
			}
			if w.rng.Float64() >= scen.ContactProb {
				continue
			}
			w.connect(a, b, now)
		}
	}
}

func (w *World) connect(a, b *Host, now float64) {
	scen := &w.ctx.Config.Scenario
	c := newConnection(a, b, float64(scen.TransferSpeed), now+scen.ContactDuration,
		func(from, to *Host, m *message.Message) bool {
			if w.AcceptSending == nil {
				return true
			}
			return w.AcceptSending(from, to, m)
		})
	w.conns = append(w.conns, c)
	w.linked[pairKey(a.id, b.id)] = c
	a.addConnection(c)
	b.addConnection(c)
}

// generateTraffic creates one message per host each MsgInterval, addressed to
// a uniformly drawn other host.
func (w *World) generateTraffic(now float64) {
	scen := &w.ctx.Config.Scenario
	if scen.MsgInterval <= 0 || len(w.hosts) < 2 {
		return
	}
	for i, h := range w.hosts {
		if now < w.nextCreate[i] {
			continue
		}
		w.nextCreate[i] += scen.MsgInterval

		to := w.rng.Intn(len(w.hosts) - 1)
		if to >= i {
			to++
		}
		h.CreateMessage(w.hosts[to].name, scen.MsgSize)
	}
}

func pairKey(a, b HostID) [2]HostID {
	if a > b {
		a, b = b, a
	}
	return [2]HostID{a, b}
}

// HostSnapshot is a point-in-time view of one host for reporting.
type HostSnapshot struct {
	Name            string        `yaml:"name" json:"name"`
	BufferMessages  int           `yaml:"bufferMessages" json:"bufferMessages"`
	BufferOccupancy float64       `yaml:"bufferOccupancy" json:"bufferOccupancy"`
	LowestPriority  float64       `yaml:"lowestPriority" json:"lowestPriority"`
	TrustContacts   int           `yaml:"trustContacts" json:"trustContacts"`
	Delivered       int           `yaml:"delivered" json:"delivered"`
	Router          routing.Stats `yaml:"router" json:"router"`
}

// Snapshot is a point-in-time view of the whole run.
type Snapshot struct {
	Time        float64        `yaml:"time" json:"time"`
	Connections int            `yaml:"connections" json:"connections"`
	Events      Counters       `yaml:"events" json:"events"`
	Hosts       []HostSnapshot `yaml:"hosts" json:"hosts"`
}

// Snapshot captures run state for the report and the introspection endpoint.
// Safe to call concurrently with Update.
func (w *World) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		Time:        w.ctx.Clock.Now(),
		Connections: len(w.conns),
		Events:      *w.ctx.Events,
		Hosts:       make([]HostSnapshot, 0, len(w.hosts)),
	}
	for _, h := range w.hosts {
		buf := h.router.Buffer()
		lowest, _ := buf.LowestPriority()
		snap.Hosts = append(snap.Hosts, HostSnapshot{
			Name:            h.name,
			BufferMessages:  buf.Len(),
			BufferOccupancy: buf.Occupancy(),
			LowestPriority:  lowest,
			TrustContacts:   h.store.Len(),
			Delivered:       len(h.delivered),
			Router:          h.router.Stats(),
		})
	}
	return snap
}
