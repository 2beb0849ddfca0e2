package routing

import (
	"sort"

	"github.com/go-dtn/go-moby/lib/trust"
)

// Selector ranks reachable connections by the trust score of the peer
// endpoint and caps the candidate set.
type Selector struct {
	engine *trust.Engine
}

func NewSelector(engine *trust.Engine) *Selector {
	return &Selector{engine: engine}
}

// Select returns at most max connections, preferring the most trustworthy
// peers. Each peer's common-contact statistics are refreshed first, since a
// connection is a contact event. Whole trust groups are taken from highest
// score down; when a group would overflow the cap, its prefix in input order
// fills the remaining capacity. Order among equally trusted peers carries no
// meaning but is stable within one call. Inputs at or under the cap come
// back unchanged.
func (s *Selector) Select(cons []Conn, local trust.Peer, max int) []Conn {
	if len(cons) <= max {
		return cons
	}

	byScore := make(map[float64][]Conn)
	for _, con := range cons {
		peer := con.Peer(local)
		s.engine.RefreshCommonContacts(local, peer)
		score := s.engine.Score(local, peer.Name())
		byScore[score] = append(byScore[score], con)
	}

	scores := make([]float64, 0, len(byScore))
	for score := range byScore {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	out := make([]Conn, 0, max)
	for _, score := range scores {
		for _, con := range byScore[score] {
			out = append(out, con)
			if len(out) == max {
				return out
			}
		}
	}
	return out
}
