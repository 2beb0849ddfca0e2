package sim

// Counters aggregates per-run message events. Per-message outcomes are
// silent at the protocol level; this is where they become visible. The
// single-threaded tick model needs no locking here — concurrent readers
// (report endpoint) go through World.Snapshot, which holds the world lock.
type Counters struct {
	Created             int `yaml:"created" json:"created"`
	Relayed             int `yaml:"relayed" json:"relayed"`
	Delivered           int `yaml:"delivered" json:"delivered"`
	Aborted             int `yaml:"aborted" json:"aborted"`
	DroppedTTLExpired   int `yaml:"droppedTtlExpired" json:"droppedTtlExpired"`
	DroppedTTLExceeded  int `yaml:"droppedTtlExceeded" json:"droppedTtlExceeded"`
	DroppedLowPriority  int `yaml:"droppedLowPriority" json:"droppedLowPriority"`
	DuplicateSuppressed int `yaml:"duplicateSuppressed" json:"duplicateSuppressed"`
	Evicted             int `yaml:"evicted" json:"evicted"`
}
