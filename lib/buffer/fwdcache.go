package buffer

// ForwardedCache remembers which message ids a host has already forwarded,
// each with an absolute expiry time. While an id is present the host must
// never re-absorb that message, which is what keeps epidemic forwarding from
// amplifying into a flood.
//
// Sweep is advisory cleanup invoked once per tick by the host update hook;
// lookups do not purge, so an expired-but-unswept entry still reads as
// forwarded until the next sweep. Re-admitting a message one tick late is
// tolerable; re-admitting it early is not.
type ForwardedCache struct {
	expiry    map[string]float64
	retention float64 // seconds
}

func NewForwardedCache(retentionSeconds float64) *ForwardedCache {
	return &ForwardedCache{
		expiry:    make(map[string]float64),
		retention: retentionSeconds,
	}
}

// Mark records that the owning host forwarded id at time now. Idempotent: a
// second mark while the first is live does not extend the expiry.
func (c *ForwardedCache) Mark(id string, now float64) {
	if _, ok := c.expiry[id]; !ok {
		c.expiry[id] = now + c.retention
	}
}

// Has reports whether id is remembered as forwarded.
func (c *ForwardedCache) Has(id string) bool {
	_, ok := c.expiry[id]
	return ok
}

// Sweep drops every entry whose expiry lies before now and returns how many
// were removed.
func (c *ForwardedCache) Sweep(now float64) int {
	removed := 0
	for id, exp := range c.expiry {
		if exp < now {
			delete(c.expiry, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of remembered ids, expired or not.
func (c *ForwardedCache) Len() int {
	return len(c.expiry)
}
