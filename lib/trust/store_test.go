package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementAbsentReadsAsZero(t *testing.T) {
	s := NewStore()
	e := s.Element("never-seen")
	assert.Equal(t, Element{}, e)
	// Reading must not materialize an element.
	assert.Equal(t, 0, s.Len())
}

func TestSettersInitializeLazily(t *testing.T) {
	s := NewStore()
	s.SetCommonMoby("c1", 4)
	s.SetCommonNonMoby("c1", 7)
	assert.Equal(t, Element{CommonMoby: 4, CommonNonMoby: 7}, s.Element("c1"))
	assert.Equal(t, 1, s.Len())
}

func TestRecordCommunicationBumpsAndTracksHighest(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 1, s.RecordCommunication("c1"))
	assert.Equal(t, 2, s.RecordCommunication("c1"))
	assert.Equal(t, 1, s.RecordCommunication("c2"))
	assert.Equal(t, 2, s.HighestCommunications())
	assert.Equal(t, 2, s.Element("c1").Communications)
}

func TestSeedCommunications(t *testing.T) {
	s := NewStore()
	s.SeedCommunications("c1", 9)
	assert.Equal(t, 9, s.Element("c1").Communications)
	assert.Equal(t, 9, s.HighestCommunications())

	// The watermark only ever rises.
	s.SetHighestCommunications(5)
	assert.Equal(t, 9, s.HighestCommunications())
	s.SetHighestCommunications(12)
	assert.Equal(t, 12, s.HighestCommunications())
}
