package command

import (
	"fmt"

	"github.com/karelgrid/karel/world"
)

// Tier is a capability level controlling which world operations an executed
// program may invoke. The three tiers are strictly nested:
// normal ⊂ super ⊂ ultra.
type Tier string

const (
	TierNormal Tier = "normal"
	TierSuper  Tier = "super"
	TierUltra  Tier = "ultra"
)

// ParseTier validates a tier name.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierNormal, TierSuper, TierUltra:
		return Tier(s), nil
	}
	return "", fmt.Errorf("%w: %q is not a valid tier", world.ErrValidation, s)
}

func (t Tier) String() string {
	return string(t)
}

// Includes reports whether t grants at least the capabilities of other.
func (t Tier) Includes(other Tier) bool {
	return rank(t) >= rank(other)
}

func rank(t Tier) int {
	switch t {
	case TierSuper:
		return 1
	case TierUltra:
		return 2
	default:
		return 0
	}
}
