// Package config loads and validates simulator settings.
//
// Settings come from an optional YAML file plus viper defaults. Every option
// recognized by the Moby routing protocol keeps the name it had in the
// original scenario files (maxNbConnectionsForForward, ttlMeanTime, ...), so
// existing scenario descriptions translate one to one.
//
// Validation is strict: a non-positive value where a positive one is required,
// or an unknown router tag, aborts initialization with an error naming the
// offending setting. Per-message policy outcomes are never errors; see the
// routing and buffer packages.
package config
