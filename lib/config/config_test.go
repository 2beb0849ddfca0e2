package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "moby", cfg.Scenario.Router)
	assert.Equal(t, QueueModePriority, cfg.Scenario.QueueMode)
	assert.Equal(t, 40, cfg.Scenario.NrofHosts)
	assert.Equal(t, 3, cfg.Moby.MaxConnectionsForForward)
	assert.NoError(t, cfg.Scenario.Validate())
	assert.NoError(t, cfg.Moby.Validate())
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
nrofHosts: 10
groupID: q
queueMode: fifo
ttlMeanTime: 7200
ttlStdDevTime: 1800
pathToTrustElementsFile: /data/trust.txt
forwardRateLimit: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Scenario.NrofHosts)
	assert.Equal(t, "q", cfg.Scenario.GroupID)
	assert.Equal(t, QueueModeFIFO, cfg.Scenario.QueueMode)
	assert.Equal(t, 7200, cfg.Moby.TTLMeanTime)
	assert.Equal(t, "/data/trust.txt", cfg.Moby.TrustElementsFile)
	assert.Equal(t, 2.5, cfg.Moby.ForwardRateLimit)

	// Untouched keys keep their defaults.
	assert.Equal(t, defaultScenarioConfig.BufferSize, cfg.Scenario.BufferSize)
	assert.Equal(t, defaultMobyConfig.MaxMobyContacts, cfg.Moby.MaxMobyContacts)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFromViperRejectsInvalidSettings(t *testing.T) {
	cases := []struct {
		key     string
		value   interface{}
		wantErr string
	}{
		{"nrofHosts", 0, "nrofHosts"},
		{"endTime", -1, "endTime"},
		{"updateInterval", 0, "updateInterval"},
		{"groupID", "", "groupID"},
		{"bufferSize", 0, "bufferSize"},
		{"queueMode", "random", "queueMode"},
		{"contactProb", 1.5, "contactProb"},
		{"maxNbConnectionsForForward", 0, "maxNbConnectionsForForward"},
		{"ttlMeanTime", 0, "ttlMeanTime"},
		{"trustWeightMobyContacts", -0.1, "trustWeightMobyContacts"},
		{"maxnrofMobyContacts", 0, "maxnrofMobyContacts"},
		{"timeRememberForwardedMsgs", 0, "timeRememberForwardedMsgs"},
		{"forwardRateLimit", -1, "forwardRateLimit"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			v.Set(tc.key, tc.value)

			_, err := FromViper(v)
			require.Error(t, err)
			// Errors name the offending setting the way the file spells it.
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRejectsSubMinuteTTLBound(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	// Each positive on its own, but together under one minute: the TTL bound
	// would be zero and priorities would divide by it.
	v.Set("ttlMeanTime", 30)
	v.Set("ttlStdDevTime", 20)

	_, err := FromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttlMeanTime")
}

func TestMaxTTLMinutes(t *testing.T) {
	c := MobyConfig{TTLMeanTime: 96 * 3600, TTLStdDevTime: 24 * 3600}
	assert.Equal(t, 7200, c.MaxTTLMinutes())
}
