package trust

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPeer struct {
	name     string
	store    *Store
	contacts *ContactTable
	rng      *rand.Rand
}

func newTestPeer(name string, types map[string]bool) *testPeer {
	return &testPeer{
		name:     name,
		store:    NewStore(),
		contacts: NewContactTable(types),
		rng:      rand.New(rand.NewSource(int64(len(name)) + 17)),
	}
}

func (p *testPeer) Name() string            { return p.name }
func (p *testPeer) TrustStore() *Store      { return p.store }
func (p *testPeer) Contacts() *ContactTable { return p.contacts }
func (p *testPeer) RNG() *rand.Rand         { return p.rng }

var testWeights = Weights{Alpha: 0.3, Beta: 0.2, Gamma: 0.5}
var testCaps = Caps{MobyContacts: 100, NonMobyContacts: 100}

func TestScoreZeroWithoutData(t *testing.T) {
	e := NewEngine(testWeights, testCaps)
	host := newTestPeer("p0", map[string]bool{"p1": true, "x1": false})
	assert.Equal(t, 0.0, e.Score(host, "p1"))
}

func TestScoreFormula(t *testing.T) {
	e := NewEngine(testWeights, testCaps)
	host := newTestPeer("p0", map[string]bool{
		"p1": true, "p2": true, "p3": true, "p4": true, // 4 moby
		"x1": false, "x2": false, // 2 non-moby
	})
	host.store.SetCommonMoby("p1", 2)
	host.store.SetCommonNonMoby("p1", 1)
	host.store.SeedCommunications("p1", 3)
	host.store.SetHighestCommunications(6)

	// alpha*2/4 + beta*1/2 + gamma*3/6
	want := 0.3*0.5 + 0.2*0.5 + 0.5*0.5
	assert.InDelta(t, want, e.Score(host, "p1"), 1e-12)
}

func TestScoreCapsDenominators(t *testing.T) {
	e := NewEngine(testWeights, Caps{MobyContacts: 2, NonMobyContacts: 100})
	types := map[string]bool{}
	for i := 0; i < 10; i++ {
		types["p"+strconv.Itoa(i)] = true
	}
	host := newTestPeer("h", types)
	host.store.SetCommonMoby("p1", 2)

	// Denominator capped to 2, not 10.
	assert.InDelta(t, 0.3*2.0/2.0, e.Score(host, "p1"), 1e-12)
}

func TestScoreBound(t *testing.T) {
	e := NewEngine(testWeights, testCaps)
	types := map[string]bool{}
	for i := 0; i < 20; i++ {
		types["p"+strconv.Itoa(i)] = true
		types["x"+strconv.Itoa(i)] = false
	}
	host := newTestPeer("h", types)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		contact := "p" + strconv.Itoa(rng.Intn(20))
		host.store.SetCommonMoby(contact, rng.Intn(21))
		host.store.SetCommonNonMoby(contact, rng.Intn(21))
		host.store.RecordCommunication(contact)

		score := e.Score(host, contact)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, e.MaxScore())
	}
}

func TestRefreshCommonContactsSymmetric(t *testing.T) {
	e := NewEngine(testWeights, testCaps)
	shared := map[string]bool{"p5": true, "p6": true, "x9": false}

	aTypes := map[string]bool{"p1": true, "x1": false}
	bTypes := map[string]bool{"p2": true, "x2": false}
	for c, m := range shared {
		aTypes[c] = m
		bTypes[c] = m
	}
	a := newTestPeer("a", aTypes)
	b := newTestPeer("b", bTypes)

	e.RefreshCommonContacts(a, b)

	// Under the cap the subsets are the full sets, so the intersection is
	// exact and symmetric.
	assert.Equal(t, 2, a.store.Element("b").CommonMoby)
	assert.Equal(t, 2, b.store.Element("a").CommonMoby)
	assert.Equal(t, 1, a.store.Element("b").CommonNonMoby)
	assert.Equal(t, 1, b.store.Element("a").CommonNonMoby)
}

func TestRefreshBoundsSubsetSize(t *testing.T) {
	e := NewEngine(testWeights, Caps{MobyContacts: 5, NonMobyContacts: 5})
	types := map[string]bool{}
	for i := 0; i < 30; i++ {
		types["p"+strconv.Itoa(i)] = true
	}
	a := newTestPeer("a", types)
	b := newTestPeer("b", types)

	e.RefreshCommonContacts(a, b)

	// Each side contributes at most 5 contacts, so the intersection cannot
	// exceed 5 even though the full sets are identical.
	assert.LessOrEqual(t, a.store.Element("b").CommonMoby, 5)
}
