package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-dtn/go-moby/lib/message"
)

func TestPriorityFormula(t *testing.T) {
	model := NewPriorityModel(100)
	m := message.New("m1", "a", "b", 1, 0)
	m.TTL = 50
	m.ForwarderPriority = 0.4

	// 0.5*0.6 + 0.25*(1-0.5) + 0.25*0.4
	assert.InDelta(t, 0.3+0.125+0.1, model.Priority(m, 0.6), 1e-12)
}

func TestPriorityStrictlyIncreasesWithTrust(t *testing.T) {
	model := NewPriorityModel(100)
	m := message.New("m1", "a", "b", 1, 0)
	m.TTL = 70

	prev := model.Priority(m, 0)
	for _, trust := range []float64{0.1, 0.25, 0.5, 0.9, 1.0} {
		p := model.Priority(m, trust)
		assert.Greater(t, p, prev)
		prev = p
	}
}

func TestPriorityStrictlyDecreasesWithRemainingTTL(t *testing.T) {
	model := NewPriorityModel(100)
	m := message.New("m1", "a", "b", 1, 0)

	m.TTL = 90
	fresher := model.Priority(m, 0.5)
	m.TTL = 30
	older := model.Priority(m, 0.5)
	assert.Greater(t, older, fresher)
}

func TestPriorityUnstampedForwarderReadsAsZero(t *testing.T) {
	model := NewPriorityModel(100)
	m := message.New("m1", "a", "b", 1, 0)
	m.TTL = 100

	assert.InDelta(t, 0.5*0.8, model.Priority(m, 0.8), 1e-12)
}
