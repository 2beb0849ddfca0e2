package trust

// Element is the trust statistics a host keeps about one contact. The common
// contact counts are recomputed on every contact event; Communications only
// ever grows.
type Element struct {
	CommonMoby     int
	CommonNonMoby  int
	Communications int
}

// Store is a host's table of trust elements, keyed by contact identifier.
// Elements are created lazily the first time a contact is observed and never
// deleted during a run. The store also tracks the highest communication count
// seen toward any contact, which is the denominator of the communications
// factor of the trust score.
type Store struct {
	elements map[string]*Element
	highest  int
}

func NewStore() *Store {
	return &Store{elements: make(map[string]*Element)}
}

// Element returns a copy of the statistics for contact. Absent trust data is
// a legitimate initial condition and reads as all zeros.
func (s *Store) Element(contact string) Element {
	if e, ok := s.elements[contact]; ok {
		return *e
	}
	return Element{}
}

// Len returns the number of contacts with trust elements.
func (s *Store) Len() int {
	return len(s.elements)
}

// HighestCommunications returns the largest communication count toward any
// single contact.
func (s *Store) HighestCommunications() int {
	return s.highest
}

// SetHighestCommunications seeds the watermark from the trust dataset. Later
// RecordCommunication calls can only raise it.
func (s *Store) SetHighestCommunications(n int) {
	if n > s.highest {
		s.highest = n
	}
}

func (s *Store) element(contact string) *Element {
	e, ok := s.elements[contact]
	if !ok {
		e = &Element{}
		s.elements[contact] = e
	}
	return e
}

// SetCommonMoby overwrites the common Moby contact cardinality for contact.
func (s *Store) SetCommonMoby(contact string, n int) {
	s.element(contact).CommonMoby = n
}

// SetCommonNonMoby overwrites the common non-Moby contact cardinality for
// contact.
func (s *Store) SetCommonNonMoby(contact string, n int) {
	s.element(contact).CommonNonMoby = n
}

// SeedCommunications sets the initial communication count for contact, as
// loaded from the trust dataset.
func (s *Store) SeedCommunications(contact string, n int) {
	e := s.element(contact)
	e.Communications = n
	if n > s.highest {
		s.highest = n
	}
}

// RecordCommunication bumps the communication counter for contact by one and
// returns the new value, raising the highest-communications watermark when
// passed.
func (s *Store) RecordCommunication(contact string) int {
	e := s.element(contact)
	e.Communications++
	if e.Communications > s.highest {
		s.highest = e.Communications
	}
	return e.Communications
}

// Contacts returns the contact ids with trust elements, in no particular
// order. Used by the introspection endpoint.
func (s *Store) Contacts() []string {
	out := make([]string, 0, len(s.elements))
	for c := range s.elements {
		out = append(out, c)
	}
	return out
}
