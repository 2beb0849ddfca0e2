package sim

import "github.com/go-dtn/go-moby/lib/config"

// Context bundles what every simulation component needs: the clock, the
// immutable run configuration and the event counters. It is passed
// explicitly; there is no global scenario singleton.
type Context struct {
	Clock  *Clock
	Config *config.Config
	Events *Counters
}

// NewContext builds a fresh context for one run.
func NewContext(cfg *config.Config) *Context {
	return &Context{
		Clock:  &Clock{},
		Config: cfg,
		Events: &Counters{},
	}
}
