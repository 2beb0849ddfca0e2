package config

import (
	"github.com/samber/oops"
)

// MobyConfig holds the per-group immutable settings of the Moby routing
// protocol. One value is shared by every host in a group; per-host mutable
// state lives in the host itself.
type MobyConfig struct {
	// Number of reachable connections above which only the most trustworthy
	// ones are used for forwarding.
	MaxConnectionsForForward int
	// Mean and standard deviation, in seconds, of the normal distribution
	// message TTLs are drawn from.
	TTLMeanTime   int
	TTLStdDevTime int
	// Trust score weights: common Moby contacts, common non-Moby contacts,
	// completed communications.
	TrustWeightMobyContacts    float64
	TrustWeightNonMobyContacts float64
	TrustWeightCommunications  float64
	// Caps on the subset sizes fed to the common-contact intersection.
	MaxMobyContacts    int
	MaxNonMobyContacts int
	// How long, in seconds, a host remembers message ids it forwarded.
	RememberForwarded int
	// Path to the trust-elements dataset. Required when the Moby router is
	// enabled for a host group.
	TrustElementsFile string
	// Sustained forwarding ticks per second allowed per host. Zero means
	// unlimited.
	ForwardRateLimit float64
}

// MaxTTLMinutes returns the admission bound on message TTL: mean plus one
// standard deviation of the TTL distribution, converted to minutes.
func (c *MobyConfig) MaxTTLMinutes() int {
	return (c.TTLMeanTime + c.TTLStdDevTime) / 60
}

// Validate checks every Moby option that must be positive, returning an error
// naming the first violating setting.
func (c *MobyConfig) Validate() error {
	if c.MaxConnectionsForForward <= 0 {
		return oops.Errorf("maxNbConnectionsForForward must be positive, got %d", c.MaxConnectionsForForward)
	}
	if c.TTLMeanTime <= 0 {
		return oops.Errorf("ttlMeanTime must be positive, got %d", c.TTLMeanTime)
	}
	if c.TTLStdDevTime <= 0 {
		return oops.Errorf("ttlStdDevTime must be positive, got %d", c.TTLStdDevTime)
	}
	if c.MaxTTLMinutes() <= 0 {
		return oops.Errorf("ttlMeanTime + ttlStdDevTime must cover at least one minute, got %d seconds",
			c.TTLMeanTime+c.TTLStdDevTime)
	}
	if c.TrustWeightMobyContacts < 0 {
		return oops.Errorf("trustWeightMobyContacts must not be negative, got %f", c.TrustWeightMobyContacts)
	}
	if c.TrustWeightNonMobyContacts < 0 {
		return oops.Errorf("trustWeightNonMobyContacts must not be negative, got %f", c.TrustWeightNonMobyContacts)
	}
	if c.TrustWeightCommunications < 0 {
		return oops.Errorf("trustWeightCommunications must not be negative, got %f", c.TrustWeightCommunications)
	}
	if c.MaxMobyContacts <= 0 {
		return oops.Errorf("maxnrofMobyContacts must be positive, got %d", c.MaxMobyContacts)
	}
	if c.MaxNonMobyContacts <= 0 {
		return oops.Errorf("maxnrofNonMobyContacts must be positive, got %d", c.MaxNonMobyContacts)
	}
	if c.RememberForwarded <= 0 {
		return oops.Errorf("timeRememberForwardedMsgs must be positive, got %d", c.RememberForwarded)
	}
	if c.ForwardRateLimit < 0 {
		return oops.Errorf("forwardRateLimit must not be negative, got %f", c.ForwardRateLimit)
	}
	return nil
}
