package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScenarioRequiresTrustDataset(t *testing.T) {
	cfg := baseConfig()
	cfg.Moby.TrustElementsFile = ""

	_, err := BuildScenario(NewContext(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pathToTrustElementsFile")
}

func TestBuildScenarioUnknownRouter(t *testing.T) {
	cfg := baseConfig()
	cfg.Scenario.Router = "bogus"

	_, err := BuildScenario(NewContext(cfg))
	assert.Error(t, err)
}

func TestBuildScenarioWiresTrustState(t *testing.T) {
	cfg := baseConfig()
	cfg.Moby.TrustElementsFile = writeTrustFile(t, 3)

	w, err := BuildScenario(NewContext(cfg))
	require.NoError(t, err)

	hosts := w.Hosts()
	require.Len(t, hosts, 3)
	assert.Equal(t, "p0", hosts[0].Name())
	assert.Equal(t, "p2", hosts[2].Name())

	// Each host knows the two others as Moby contacts plus one non-Moby.
	assert.Equal(t, 2, hosts[0].Contacts().MobyCount())
	assert.Equal(t, 1, hosts[0].Contacts().NonMobyCount())

	// Seeded communication counts and the watermark come from the dataset.
	assert.Equal(t, 1, hosts[0].TrustStore().Element("p1").Communications)
	assert.Equal(t, 3, hosts[0].TrustStore().HighestCommunications())

	// Precomputed intersection: hosts 0 and 1 share p2 as a Moby contact.
	assert.Equal(t, 1, hosts[0].TrustStore().Element("p1").CommonMoby)
}

func TestBuildScenarioHostsBeyondDataset(t *testing.T) {
	cfg := baseConfig()
	cfg.Scenario.NrofHosts = 4
	cfg.Moby.TrustElementsFile = writeTrustFile(t, 3)

	w, err := BuildScenario(NewContext(cfg))
	require.NoError(t, err)

	// Hosts absent from the dataset start with no trust knowledge.
	h := w.Hosts()[3]
	assert.Equal(t, 0, h.Contacts().MobyCount())
	assert.Equal(t, 0, h.TrustStore().Len())
}
