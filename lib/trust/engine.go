package trust

import "math/rand"

// Peer is what the trust engine needs to see of a host: its identity, its
// trust table, its contact sets and its private RNG. The simulation's host
// type implements it.
type Peer interface {
	Name() string
	TrustStore() *Store
	Contacts() *ContactTable
	RNG() *rand.Rand
}

// Weights are the three importance factors of the trust score. Each is
// non-negative; their sum is the score's upper bound.
type Weights struct {
	// Alpha weighs the common Moby contact overlap.
	Alpha float64
	// Beta weighs the common non-Moby contact overlap.
	Beta float64
	// Gamma weighs the communication history.
	Gamma float64
}

// Caps bound the subset sizes fed to the common-contact intersection, which
// also caps the denominators of the two overlap factors.
type Caps struct {
	MobyContacts    int
	NonMobyContacts int
}

// Engine computes trust scores and drives common-contact refreshes. It is
// stateless; all statistics live in the hosts' stores.
type Engine struct {
	weights Weights
	caps    Caps
}

func NewEngine(w Weights, c Caps) *Engine {
	return &Engine{weights: w, caps: c}
}

// MaxScore returns the upper bound of Score: the sum of the three weights.
func (e *Engine) MaxScore() float64 {
	return e.weights.Alpha + e.weights.Beta + e.weights.Gamma
}

// Score returns host's trust in contact. A zero denominator zeroes the
// corresponding factor rather than failing, and a contact without trust
// elements scores zero: absent data is an initial condition, not an error.
func (e *Engine) Score(host Peer, contact string) float64 {
	elt := host.TrustStore().Element(contact)

	score := 0.0
	if m := min(host.Contacts().MobyCount(), e.caps.MobyContacts); m > 0 {
		score += e.weights.Alpha * float64(elt.CommonMoby) / float64(m)
	}
	if n := min(host.Contacts().NonMobyCount(), e.caps.NonMobyContacts); n > 0 {
		score += e.weights.Beta * float64(elt.CommonNonMoby) / float64(n)
	}
	if h := host.TrustStore().HighestCommunications(); h > 0 {
		score += e.weights.Gamma * float64(elt.Communications) / float64(h)
	}
	return score
}

// RefreshCommonContacts recomputes the common-contact cardinalities for the
// pair (a, b), writing the results symmetrically into both stores. It stands
// in for one round of the privacy-preserving cardinality protocol: each side
// contributes a bounded random subset of its contact sets, and only the
// intersection sizes are retained. Subset draws are independent per call.
func (e *Engine) RefreshCommonContacts(a, b Peer) {
	commonMoby := intersectionSize(
		a.Contacts().MobySubset(e.caps.MobyContacts, a.RNG()),
		b.Contacts().MobySubset(e.caps.MobyContacts, b.RNG()),
	)
	a.TrustStore().SetCommonMoby(b.Name(), commonMoby)
	b.TrustStore().SetCommonMoby(a.Name(), commonMoby)

	commonNonMoby := intersectionSize(
		a.Contacts().NonMobySubset(e.caps.NonMobyContacts, a.RNG()),
		b.Contacts().NonMobySubset(e.caps.NonMobyContacts, b.RNG()),
	)
	a.TrustStore().SetCommonNonMoby(b.Name(), commonNonMoby)
	b.TrustStore().SetCommonNonMoby(a.Name(), commonNonMoby)
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
