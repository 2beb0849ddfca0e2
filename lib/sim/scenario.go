package sim

import (
	"math/rand"

	"github.com/samber/oops"

	"github.com/go-dtn/go-moby/lib/routing"
	"github.com/go-dtn/go-moby/lib/trust"
)

// BuildScenario assembles a world from the context's configuration: it
// resolves the router factory, loads and precomputes the trust dataset when
// one is configured, and constructs the host arena with per-host RNGs
// derived from the global seed so a fixed seed reproduces a run exactly.
func BuildScenario(ctx *Context) (*World, error) {
	cfg := ctx.Config
	factory, err := routing.Lookup(cfg.Scenario.Router)
	if err != nil {
		return nil, err
	}

	var (
		records map[int]*trust.Record
		stores  map[int]*trust.Store
	)
	if cfg.Moby.TrustElementsFile != "" {
		records, err = trust.LoadDataset(cfg.Moby.TrustElementsFile, cfg.Scenario.GroupID)
		if err != nil {
			return nil, err
		}
		stores, err = trust.ComputeElements(records, cfg.Scenario.GroupID)
		if err != nil {
			return nil, err
		}
	} else if cfg.Scenario.Router == "moby" {
		return nil, oops.Errorf("pathToTrustElementsFile is required when the moby router is enabled")
	}

	globalRNG := rand.New(rand.NewSource(cfg.Scenario.Seed))

	hosts := make([]*Host, cfg.Scenario.NrofHosts)
	for i := range hosts {
		name := hostName(cfg.Scenario.GroupID, i)

		store := trust.NewStore()
		contactTypes := map[string]bool{}
		if rec, ok := records[i]; ok {
			contactTypes = rec.Types
			store = stores[i]
		}

		h := newHost(HostID(i), name, ctx, store,
			trust.NewContactTable(contactTypes), globalRNG.Int63())
		h.router = factory(cfg, h)
		hosts[i] = h
	}

	log.WithField("hosts", len(hosts)).Debug("scenario built")
	return newWorld(ctx, hosts, globalRNG), nil
}
