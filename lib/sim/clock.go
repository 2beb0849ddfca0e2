package sim

// Clock is the global simulated clock, in seconds. Only the world advances
// it; everything else reads.
type Clock struct {
	now float64
}

func (c *Clock) Now() float64 {
	return c.now
}

func (c *Clock) Advance(dt float64) {
	c.now += dt
}
