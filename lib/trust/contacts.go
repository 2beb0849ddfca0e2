package trust

import (
	"math/rand"
	"sort"
)

// ContactTable is a host's immutable view of who its contacts are and whether
// each one participates in the protocol. It is loaded once at host creation;
// dynamic contact-set changes are out of scope.
type ContactTable struct {
	moby    []string
	nonMoby []string
}

// NewContactTable builds a table from a contact-id -> participates mapping.
// Contact lists are kept sorted so subset sampling is deterministic under a
// fixed RNG seed.
func NewContactTable(types map[string]bool) *ContactTable {
	t := &ContactTable{}
	for contact, isMoby := range types {
		if isMoby {
			t.moby = append(t.moby, contact)
		} else {
			t.nonMoby = append(t.nonMoby, contact)
		}
	}
	sort.Strings(t.moby)
	sort.Strings(t.nonMoby)
	return t
}

// MobyCount returns the number of protocol-participant contacts.
func (t *ContactTable) MobyCount() int { return len(t.moby) }

// NonMobyCount returns the number of contacts outside the protocol.
func (t *ContactTable) NonMobyCount() int { return len(t.nonMoby) }

// MobyContacts returns the protocol-participant contact ids in sorted order.
func (t *ContactTable) MobyContacts() []string {
	out := make([]string, len(t.moby))
	copy(out, t.moby)
	return out
}

// NonMobyContacts returns the non-participant contact ids in sorted order.
func (t *ContactTable) NonMobyContacts() []string {
	out := make([]string, len(t.nonMoby))
	copy(out, t.nonMoby)
	return out
}

// MobySubset draws up to max protocol contacts without replacement. Each call
// draws independently, so repeated contact events between the same pair can
// see slightly different subsets.
func (t *ContactTable) MobySubset(max int, rng *rand.Rand) map[string]struct{} {
	return sampleSubset(t.moby, max, rng)
}

// NonMobySubset draws up to max non-protocol contacts without replacement.
func (t *ContactTable) NonMobySubset(max int, rng *rand.Rand) map[string]struct{} {
	return sampleSubset(t.nonMoby, max, rng)
}

func sampleSubset(contacts []string, max int, rng *rand.Rand) map[string]struct{} {
	n := len(contacts)
	out := make(map[string]struct{}, min(n, max))
	if n <= max {
		for _, c := range contacts {
			out[c] = struct{}{}
		}
		return out
	}
	// Partial Fisher-Yates over a scratch copy: the first max positions are a
	// uniform sample without replacement.
	scratch := make([]string, n)
	copy(scratch, contacts)
	for i := 0; i < max; i++ {
		j := i + rng.Intn(n-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
		out[scratch[i]] = struct{}{}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
