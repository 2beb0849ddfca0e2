package message

import "math/rand"

// RandomizeTTL assigns m a lifetime drawn from N(meanSeconds, stddevSeconds)
// and converts it to the router's native minute unit by truncating division.
// It must run after any base-layer TTL assignment so it is not overwritten.
// The draw can come out non-positive for small means; such a message simply
// expires at the next TTL check, which matches the distribution's tail.
func RandomizeTTL(m *Message, meanSeconds, stddevSeconds int, rng *rand.Rand) {
	m.TTL = int(drawTTLSeconds(meanSeconds, stddevSeconds, rng)) / 60
}

func drawTTLSeconds(meanSeconds, stddevSeconds int, rng *rand.Rand) float64 {
	return float64(meanSeconds) + rng.NormFloat64()*float64(stddevSeconds)
}
