package trust

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactTableSplitsByType(t *testing.T) {
	table := NewContactTable(map[string]bool{
		"p1": true, "p2": true, "x1": false, "x2": false, "x3": false,
	})
	assert.Equal(t, 2, table.MobyCount())
	assert.Equal(t, 3, table.NonMobyCount())
	assert.Equal(t, []string{"p1", "p2"}, table.MobyContacts())
	assert.Equal(t, []string{"x1", "x2", "x3"}, table.NonMobyContacts())
}

func TestSubsetUnderCapReturnsAll(t *testing.T) {
	table := NewContactTable(map[string]bool{"p1": true, "p2": true})
	subset := table.MobySubset(10, rand.New(rand.NewSource(1)))
	assert.Len(t, subset, 2)
}

func TestSubsetSamplesWithoutReplacement(t *testing.T) {
	types := make(map[string]bool, 50)
	for i := 0; i < 50; i++ {
		types["p"+strconv.Itoa(i)] = true
	}
	table := NewContactTable(types)
	rng := rand.New(rand.NewSource(3))

	subset := table.MobySubset(20, rng)
	// A map of size 20 from 50 distinct contacts proves no duplicates.
	require.Len(t, subset, 20)
	for c := range subset {
		assert.True(t, types[c], "sampled unknown contact %s", c)
	}
}

func TestSubsetDrawsVaryAcrossCalls(t *testing.T) {
	types := make(map[string]bool, 40)
	for i := 0; i < 40; i++ {
		types["p"+strconv.Itoa(i)] = true
	}
	table := NewContactTable(types)
	rng := rand.New(rand.NewSource(3))

	a := table.MobySubset(10, rng)
	b := table.MobySubset(10, rng)
	same := true
	for c := range a {
		if _, ok := b[c]; !ok {
			same = false
			break
		}
	}
	assert.False(t, same, "independent draws should differ")
}
