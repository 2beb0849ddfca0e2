package buffer

import (
	"sort"

	"github.com/go-dtn/go-moby/lib/message"
	"github.com/go-dtn/go-moby/lib/util/logger"
)

var log = logger.GetLogger()

type entry struct {
	msg *message.Message
	// seq is the receive order, the deterministic tie-break when several
	// residents share the lowest priority: oldest goes first.
	seq uint64
}

// Buffer is a host's bounded message store, capacity expressed in bytes.
// It caches the lowest priority among resident messages not currently being
// sent, recomputed on every mutation.
type Buffer struct {
	capacity int
	used     int
	entries  map[string]*entry
	// sending counts in-flight transfers per message id. One tick can start
	// the same message on several connections, so the exclusion holds until
	// the last of them finishes.
	sending map[string]int
	nextSeq uint64

	lowest    float64
	hasLowest bool
}

func New(capacityBytes int) *Buffer {
	return &Buffer{
		capacity: capacityBytes,
		entries:  make(map[string]*entry),
		sending:  make(map[string]int),
	}
}

func (b *Buffer) Capacity() int  { return b.capacity }
func (b *Buffer) UsedBytes() int { return b.used }
func (b *Buffer) FreeBytes() int { return b.capacity - b.used }
func (b *Buffer) Len() int       { return len(b.entries) }

// Occupancy returns buffer usage as a percentage.
func (b *Buffer) Occupancy() float64 {
	return 100 * float64(b.used) / float64(b.capacity)
}

func (b *Buffer) Has(id string) bool {
	_, ok := b.entries[id]
	return ok
}

func (b *Buffer) Get(id string) (*message.Message, bool) {
	e, ok := b.entries[id]
	if !ok {
		return nil, false
	}
	return e.msg, true
}

// Add inserts m. The caller is responsible for having made room; Add refuses
// an insert that would break the capacity bound.
func (b *Buffer) Add(m *message.Message) bool {
	if _, dup := b.entries[m.ID]; dup {
		return false
	}
	if m.Size > b.FreeBytes() {
		log.WithField("msg", m.ID).Warn("buffer insert without room")
		return false
	}
	b.entries[m.ID] = &entry{msg: m, seq: b.nextSeq}
	b.nextSeq++
	b.used += m.Size
	b.recomputeLowest()
	return true
}

// Remove deletes the message with the given id and returns it.
func (b *Buffer) Remove(id string) (*message.Message, bool) {
	e, ok := b.entries[id]
	if !ok {
		return nil, false
	}
	delete(b.entries, id)
	delete(b.sending, id)
	b.used -= e.msg.Size
	b.recomputeLowest()
	return e.msg, true
}

// UpdatePriority overwrites the resident copy's priority.
func (b *Buffer) UpdatePriority(id string, priority float64) {
	if e, ok := b.entries[id]; ok {
		e.msg.Priority = priority
		b.recomputeLowest()
	}
}

// MarkSending excludes id from lowest-priority tracking and eviction while a
// transfer of it is in flight. Each call counts one transfer.
func (b *Buffer) MarkSending(id string) {
	if _, ok := b.entries[id]; ok {
		b.sending[id]++
		b.recomputeLowest()
	}
}

// ClearSending releases one transfer of id; the message is re-included only
// when no transfer of it remains in flight.
func (b *Buffer) ClearSending(id string) {
	switch n := b.sending[id]; {
	case n > 1:
		b.sending[id] = n - 1
	case n == 1:
		delete(b.sending, id)
		b.recomputeLowest()
	}
}

// LowestPriority returns the cached minimum priority among resident messages
// not being sent. The second return is false for an empty (or all-sending)
// buffer.
func (b *Buffer) LowestPriority() (float64, bool) {
	return b.lowest, b.hasLowest
}

// Snapshot returns the resident messages in receive order.
func (b *Buffer) Snapshot() []*message.Message {
	ordered := b.orderedEntries()
	out := make([]*message.Message, len(ordered))
	for i, e := range ordered {
		out[i] = e.msg
	}
	return out
}

// AgeTTL decrements every resident message's TTL by the given number of
// minutes and removes the expired ones, except those mid-transfer. Returns
// the removed messages.
func (b *Buffer) AgeTTL(minutes int) []*message.Message {
	if minutes <= 0 {
		return nil
	}
	var expired []*message.Message
	for id, e := range b.entries {
		e.msg.TTL -= minutes
		if e.msg.Expired() {
			if _, busy := b.sending[id]; !busy {
				expired = append(expired, e.msg)
			}
		}
	}
	for _, m := range expired {
		delete(b.entries, m.ID)
		b.used -= m.Size
	}
	if len(expired) > 0 {
		b.recomputeLowest()
	}
	return expired
}

// victims returns the ascending-priority eviction set that would free enough
// space for size bytes, oldest-first among equal priorities. ok is false when
// even evicting every non-sending resident would not be enough.
func (b *Buffer) victims(size int) ([]*message.Message, bool) {
	candidates := make([]*entry, 0, len(b.entries))
	for id, e := range b.entries {
		if _, busy := b.sending[id]; !busy {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].msg.Priority != candidates[j].msg.Priority {
			return candidates[i].msg.Priority < candidates[j].msg.Priority
		}
		return candidates[i].seq < candidates[j].seq
	})

	free := b.FreeBytes()
	var out []*message.Message
	for _, e := range candidates {
		if free >= size {
			break
		}
		free += e.msg.Size
		out = append(out, e.msg)
	}
	if free < size {
		return nil, false
	}
	return out, true
}

// MakeRoom evicts ascending-priority residents until size bytes fit,
// unconditionally. Used for locally created messages, which are always
// admitted. Returns the evicted messages, or ok=false (and no change) if the
// message cannot fit at all.
func (b *Buffer) MakeRoom(size int) ([]*message.Message, bool) {
	victims, ok := b.victims(size)
	if !ok {
		return nil, false
	}
	for _, m := range victims {
		b.Remove(m.ID)
	}
	return victims, true
}

func (b *Buffer) orderedEntries() []*entry {
	out := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (b *Buffer) recomputeLowest() {
	b.hasLowest = false
	b.lowest = 0
	for id, e := range b.entries {
		if _, busy := b.sending[id]; busy {
			continue
		}
		if !b.hasLowest || e.msg.Priority < b.lowest {
			b.lowest = e.msg.Priority
			b.hasLowest = true
		}
	}
}
