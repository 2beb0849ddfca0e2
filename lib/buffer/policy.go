package buffer

import (
	"github.com/go-dtn/go-moby/lib/message"
)

// Verdict is the outcome of an admission attempt. All verdicts are normal
// control flow; each leaves the buffer in a valid state.
type Verdict int

const (
	// Admitted: the message is now buffer-resident.
	Admitted Verdict = iota
	// DuplicateSuppressed: the host already forwarded or already holds this
	// message; no second copy is stored.
	DuplicateSuppressed
	// DroppedTTLExceeded: the message's TTL is above the admission bound.
	DroppedTTLExceeded
	// DroppedLowPriority: the buffer is full of higher-priority traffic.
	DroppedLowPriority
)

func (v Verdict) String() string {
	switch v {
	case Admitted:
		return "admitted"
	case DuplicateSuppressed:
		return "duplicate-suppressed"
	case DroppedTTLExceeded:
		return "dropped-ttl-exceeded"
	case DroppedLowPriority:
		return "dropped-low-priority"
	default:
		return "unknown"
	}
}

// Policy makes admission and eviction decisions for one host's buffer.
type Policy struct {
	owner string
	buf   *Buffer
	fwd   *ForwardedCache
	model PriorityModel
	// trustOf returns the owning host's trust in a contact.
	trustOf func(contact string) float64
	// onDelivered runs final-delivery bookkeeping toward the sender contact.
	// Moving the message into a delivered store stays with the external
	// router.
	onDelivered func(sender string)
}

func NewPolicy(owner string, buf *Buffer, fwd *ForwardedCache, model PriorityModel,
	trustOf func(contact string) float64, onDelivered func(sender string)) *Policy {
	return &Policy{
		owner:       owner,
		buf:         buf,
		fwd:         fwd,
		model:       model,
		trustOf:     trustOf,
		onDelivered: onDelivered,
	}
}

// Admit decides whether the message offered by the forwarder enters the
// buffer, evicting strictly lower-priority residents as needed. Evicted
// messages are returned so the caller can report the drops. On any rejection
// the buffer is unchanged, and after Admit returns occupancy is always within
// capacity.
func (p *Policy) Admit(m *message.Message, forwarder string) (Verdict, []*message.Message) {
	if m.TTL > p.model.MaxTTL() {
		return DroppedTTLExceeded, nil
	}

	// Re-absorbing a message this host recently forwarded would loop it
	// straight back into circulation.
	if p.fwd.Has(m.ID) {
		return DuplicateSuppressed, nil
	}

	trustInForwarder := p.trustOf(forwarder)
	m.Priority = p.model.Priority(m, trustInForwarder)

	if resident, ok := p.buf.Get(m.ID); ok {
		// Already queued: the resident copy keeps the higher of the two
		// priorities.
		if m.Priority > resident.Priority {
			p.buf.UpdatePriority(m.ID, m.Priority)
		}
		return DuplicateSuppressed, nil
	}

	var evicted []*message.Message
	if m.Size > p.buf.FreeBytes() {
		victims, ok := p.buf.victims(m.Size)
		if !ok {
			return DroppedLowPriority, nil
		}
		// The candidate must beat every victim strictly; victims are in
		// ascending priority order, so checking the last one suffices.
		if m.Priority <= victims[len(victims)-1].Priority {
			return DroppedLowPriority, nil
		}
		for _, v := range victims {
			p.buf.Remove(v.ID)
		}
		evicted = victims
	}

	p.buf.Add(m)

	if m.To == p.owner {
		p.onDelivered(m.From)
	}
	return Admitted, evicted
}
