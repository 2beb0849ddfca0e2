package config

// Defaults mirror the reference scenario: a single group of pedestrian hosts
// with four-day mean TTLs and a one-day forwarded-message memory.
var defaultScenarioConfig = &ScenarioConfig{
	Seed:            1,
	EndTime:         43200,
	UpdateInterval:  1.0,
	NrofHosts:       40,
	GroupID:         "p",
	Router:          "moby",
	BufferSize:      5_000_000,
	MsgSize:         250_000,
	MsgInterval:     600,
	TransferSpeed:   250_000,
	ContactProb:     0.05,
	ContactDuration: 120,
	QueueMode:       QueueModePriority,
	DeleteDelivered: false,
	ReportFile:      "moby-report.yaml",
	HTTPAddr:        "",
}

var defaultMobyConfig = &MobyConfig{
	MaxConnectionsForForward:   3,
	TTLMeanTime:                96 * 3600,
	TTLStdDevTime:              24 * 3600,
	TrustWeightMobyContacts:    0.3,
	TrustWeightNonMobyContacts: 0.2,
	TrustWeightCommunications:  0.5,
	MaxMobyContacts:            100,
	MaxNonMobyContacts:         100,
	RememberForwarded:          24 * 3600,
	TrustElementsFile:          "",
	ForwardRateLimit:           0,
}

// DefaultScenarioConfig returns a copy of the built-in scenario defaults.
func DefaultScenarioConfig() ScenarioConfig {
	return *defaultScenarioConfig
}

// DefaultMobyConfig returns a copy of the built-in Moby protocol defaults.
func DefaultMobyConfig() MobyConfig {
	return *defaultMobyConfig
}
