// Package sim is the discrete-event engine around the routing core: a
// simulated clock, a host/connection arena addressed by stable integer
// handles, per-tick world updates and run statistics.
//
// The model is single-threaded and cooperative. One Update per host per tick
// boundary, strictly sequential; within a tick a router runs to completion
// with no blocking I/O. Radio propagation is not modeled: connectivity is a
// pluggable contact process that brings host pairs in and out of range.
package sim
