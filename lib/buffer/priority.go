package buffer

import "github.com/go-dtn/go-moby/lib/message"

// PriorityModel derives a message's forwarding priority from the receiving
// host's trust in its forwarder, the remaining lifetime, and the priority the
// forwarder itself asserted. The result is a comparison key; its absolute
// scale means nothing outside admission and eviction decisions.
type PriorityModel struct {
	maxTTL int // minutes
}

// NewPriorityModel builds a model with the given TTL admission bound in
// minutes (mean plus stddev of the TTL distribution).
func NewPriorityModel(maxTTLMinutes int) PriorityModel {
	return PriorityModel{maxTTL: maxTTLMinutes}
}

// MaxTTL returns the TTL admission bound in minutes.
func (p PriorityModel) MaxTTL() int {
	return p.maxTTL
}

// Priority computes the message priority. Strictly increasing in the trust
// score and strictly decreasing in the remaining TTL.
func (p PriorityModel) Priority(m *message.Message, trustInForwarder float64) float64 {
	timeFactor := 0.25 * (1 - float64(m.TTL)/float64(p.maxTTL))
	forwarderFactor := 0.25 * m.ForwarderPriority
	return 0.5*trustInForwarder + timeFactor + forwarderFactor
}
