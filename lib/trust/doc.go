// Package trust implements the trust model of the Moby routing protocol.
//
// Every host keeps one trust element per known contact: the cardinalities of
// the common Moby and non-Moby contact sets, refreshed on each contact event,
// and a monotonic counter of completed communications. The engine folds these
// into a scalar trust score used to rank forwarding candidates and to weight
// message priorities.
//
// The actual privacy-preserving set-intersection protocol is out of scope;
// RefreshCommonContacts simulates it by intersecting bounded random subsets
// of the two hosts' contact sets, which bounds its cost the same way the real
// protocol would.
package trust
