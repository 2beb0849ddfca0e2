package config

import (
	"github.com/samber/oops"
)

// Queue orderings for the outgoing message snapshot.
const (
	QueueModeFIFO     = "fifo"
	QueueModePriority = "priority"
)

// ScenarioConfig describes the simulated world around the routing protocol:
// clock resolution, host population, connectivity and traffic generation.
type ScenarioConfig struct {
	// Seed for the global RNG; per-host generators are derived from it so a
	// fixed seed reproduces a run exactly.
	Seed int64
	// Simulated end time in seconds.
	EndTime float64
	// Simulated seconds per tick.
	UpdateInterval float64
	// Number of hosts in the group.
	NrofHosts int
	// Group identifier, used as the prefix of host names and of Moby contact
	// ids in the trust dataset.
	GroupID string
	// Router tag looked up in the routing registry.
	Router string
	// Per-host buffer capacity in bytes.
	BufferSize int
	// Size in bytes of generated messages.
	MsgSize int
	// Mean interval, in simulated seconds, between messages created per host.
	// Zero disables traffic generation.
	MsgInterval float64
	// Transfer speed in bytes per simulated second.
	TransferSpeed int
	// Probability per tick that two disconnected hosts come into range.
	ContactProb float64
	// How long, in simulated seconds, a contact lasts.
	ContactDuration float64
	// Ordering of the outgoing snapshot: "fifo" or "priority".
	QueueMode string
	// Delete the local copy when the final recipient reports the message as
	// already delivered.
	DeleteDelivered bool
	// Path of the YAML run report. Empty disables the report file.
	ReportFile string
	// Listen address of the read-only introspection endpoint. Empty disables it.
	HTTPAddr string
}

func (c *ScenarioConfig) Validate() error {
	if c.EndTime <= 0 {
		return oops.Errorf("endTime must be positive, got %f", c.EndTime)
	}
	if c.UpdateInterval <= 0 {
		return oops.Errorf("updateInterval must be positive, got %f", c.UpdateInterval)
	}
	if c.NrofHosts <= 0 {
		return oops.Errorf("nrofHosts must be positive, got %d", c.NrofHosts)
	}
	if c.GroupID == "" {
		return oops.Errorf("groupID must not be empty")
	}
	if c.BufferSize <= 0 {
		return oops.Errorf("bufferSize must be positive, got %d", c.BufferSize)
	}
	if c.MsgSize <= 0 {
		return oops.Errorf("msgSize must be positive, got %d", c.MsgSize)
	}
	if c.MsgInterval < 0 {
		return oops.Errorf("msgInterval must not be negative, got %f", c.MsgInterval)
	}
	if c.TransferSpeed <= 0 {
		return oops.Errorf("transferSpeed must be positive, got %d", c.TransferSpeed)
	}
	if c.ContactProb < 0 || c.ContactProb > 1 {
		return oops.Errorf("contactProb must be in [0,1], got %f", c.ContactProb)
	}
	if c.ContactDuration <= 0 {
		return oops.Errorf("contactDuration must be positive, got %f", c.ContactDuration)
	}
	if c.QueueMode != QueueModeFIFO && c.QueueMode != QueueModePriority {
		return oops.Errorf("queueMode must be %q or %q, got %q", QueueModeFIFO, QueueModePriority, c.QueueMode)
	}
	return nil
}
