package config

import (
	"github.com/samber/oops"
	"github.com/spf13/viper"

	"github.com/go-dtn/go-moby/lib/util/logger"
)

var log = logger.GetLogger()

// Config is the root settings value handed to scenario construction. It is
// immutable once loaded; hosts receive it by pointer and never write to it.
type Config struct {
	Scenario ScenarioConfig
	Moby     MobyConfig
}

func setDefaults(v *viper.Viper) {
	// Scenario defaults
	v.SetDefault("seed", defaultScenarioConfig.Seed)
	v.SetDefault("endTime", defaultScenarioConfig.EndTime)
	v.SetDefault("updateInterval", defaultScenarioConfig.UpdateInterval)
	v.SetDefault("nrofHosts", defaultScenarioConfig.NrofHosts)
	v.SetDefault("groupID", defaultScenarioConfig.GroupID)
	v.SetDefault("router", defaultScenarioConfig.Router)
	v.SetDefault("bufferSize", defaultScenarioConfig.BufferSize)
	v.SetDefault("msgSize", defaultScenarioConfig.MsgSize)
	v.SetDefault("msgInterval", defaultScenarioConfig.MsgInterval)
	v.SetDefault("transferSpeed", defaultScenarioConfig.TransferSpeed)
	v.SetDefault("contactProb", defaultScenarioConfig.ContactProb)
	v.SetDefault("contactDuration", defaultScenarioConfig.ContactDuration)
	v.SetDefault("queueMode", defaultScenarioConfig.QueueMode)
	v.SetDefault("deleteDelivered", defaultScenarioConfig.DeleteDelivered)
	v.SetDefault("reportFile", defaultScenarioConfig.ReportFile)
	v.SetDefault("httpAddr", defaultScenarioConfig.HTTPAddr)

	// Moby protocol defaults
	v.SetDefault("maxNbConnectionsForForward", defaultMobyConfig.MaxConnectionsForForward)
	v.SetDefault("ttlMeanTime", defaultMobyConfig.TTLMeanTime)
	v.SetDefault("ttlStdDevTime", defaultMobyConfig.TTLStdDevTime)
	v.SetDefault("trustWeightMobyContacts", defaultMobyConfig.TrustWeightMobyContacts)
	v.SetDefault("trustWeightNonMobyContacts", defaultMobyConfig.TrustWeightNonMobyContacts)
	v.SetDefault("trustWeightCommunications", defaultMobyConfig.TrustWeightCommunications)
	v.SetDefault("maxnrofMobyContacts", defaultMobyConfig.MaxMobyContacts)
	v.SetDefault("maxnrofNonMobyContacts", defaultMobyConfig.MaxNonMobyContacts)
	v.SetDefault("timeRememberForwardedMsgs", defaultMobyConfig.RememberForwarded)
	v.SetDefault("pathToTrustElementsFile", defaultMobyConfig.TrustElementsFile)
	v.SetDefault("forwardRateLimit", defaultMobyConfig.ForwardRateLimit)
}

// Load reads the settings file at path (optional; empty path means defaults
// only), validates everything and returns the assembled Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, oops.Errorf("reading settings file %s: %w", path, err)
		}
		log.WithField("file", v.ConfigFileUsed()).Debug("loaded settings file")
	}

	return FromViper(v)
}

// FromViper assembles and validates a Config from the given viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Scenario: ScenarioConfig{
			Seed:            v.GetInt64("seed"),
			EndTime:         v.GetFloat64("endTime"),
			UpdateInterval:  v.GetFloat64("updateInterval"),
			NrofHosts:       v.GetInt("nrofHosts"),
			GroupID:         v.GetString("groupID"),
			Router:          v.GetString("router"),
			BufferSize:      v.GetInt("bufferSize"),
			MsgSize:         v.GetInt("msgSize"),
			MsgInterval:     v.GetFloat64("msgInterval"),
			TransferSpeed:   v.GetInt("transferSpeed"),
			ContactProb:     v.GetFloat64("contactProb"),
			ContactDuration: v.GetFloat64("contactDuration"),
			QueueMode:       v.GetString("queueMode"),
			DeleteDelivered: v.GetBool("deleteDelivered"),
			ReportFile:      v.GetString("reportFile"),
			HTTPAddr:        v.GetString("httpAddr"),
		},
		Moby: MobyConfig{
			MaxConnectionsForForward:   v.GetInt("maxNbConnectionsForForward"),
			TTLMeanTime:                v.GetInt("ttlMeanTime"),
			TTLStdDevTime:              v.GetInt("ttlStdDevTime"),
			TrustWeightMobyContacts:    v.GetFloat64("trustWeightMobyContacts"),
			TrustWeightNonMobyContacts: v.GetFloat64("trustWeightNonMobyContacts"),
			TrustWeightCommunications:  v.GetFloat64("trustWeightCommunications"),
			MaxMobyContacts:            v.GetInt("maxnrofMobyContacts"),
			MaxNonMobyContacts:         v.GetInt("maxnrofNonMobyContacts"),
			RememberForwarded:          v.GetInt("timeRememberForwardedMsgs"),
			TrustElementsFile:          v.GetString("pathToTrustElementsFile"),
			ForwardRateLimit:           v.GetFloat64("forwardRateLimit"),
		},
	}

	if err := cfg.Scenario.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Moby.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
