// Package routing implements the Moby trust-weighted epidemic forwarding
// protocol and the registry the simulation uses to instantiate routers.
//
// A router runs once per scheduling tick: it finalizes finished transfers,
// narrows the reachable connections to the most trustworthy ones when above
// the configured cap, and then offers every queued message to every selected
// connection. Unlike single-shot epidemic schemes the transfer loop does not
// stop after the first successful send; DTN contacts can be very short, so a
// contact opportunity is drained to busy-or-exhaustion.
//
// The engine-facing surface is three small interfaces (Conn, HostAPI and
// Router) rather than an inheritance chain; the simulation implements the
// first two, this package the third.
package routing
