package routing

import (
	"sort"

	"github.com/samber/oops"

	"github.com/go-dtn/go-moby/lib/config"
)

// Factory builds a router instance for one host from the shared immutable
// configuration.
type Factory func(cfg *config.Config, host HostAPI) Router

// The registry maps a configuration tag to a router factory, enumerated at
// compile time. An unknown tag is a configuration error, never a runtime
// reflection fallback.
var registry = map[string]Factory{}

// Register adds a factory under tag. Intended for package init; registering
// the same tag twice panics, since it is a programming error.
func Register(tag string, f Factory) {
	if _, dup := registry[tag]; dup {
		panic("routing: duplicate router tag " + tag)
	}
	registry[tag] = f
}

// Lookup resolves a configuration tag to its factory.
func Lookup(tag string) (Factory, error) {
	f, ok := registry[tag]
	if !ok {
		return nil, oops.Errorf("unknown router %q (known: %v)", tag, Tags())
	}
	return f, nil
}

// Tags returns the registered router tags in sorted order.
func Tags() []string {
	out := make([]string, 0, len(registry))
	for tag := range registry {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
