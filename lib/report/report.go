// Package report turns run state into operator-facing output: a YAML report
// file at the end of a run and an optional read-only HTTP endpoint while it
// runs.
package report

import (
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/go-dtn/go-moby/lib/sim"
	"github.com/go-dtn/go-moby/lib/util/logger"
)

var log = logger.GetLogger()

// Write marshals the snapshot to YAML at path.
func Write(path string, snap sim.Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return oops.Errorf("marshalling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oops.Errorf("writing report %s: %w", path, err)
	}
	log.WithField("file", path).Debug("report written")
	return nil
}
