package valueobject

import "fmt"

// VerdictTier is the commercial risk band a bankability score falls into.
type VerdictTier struct {
	value string
}

var (
	VerdictPrime       = VerdictTier{value: "PRIME"}
	VerdictBankable    = VerdictTier{value: "BANKABLE"}
	VerdictSpeculative = VerdictTier{value: "SPECULATIVE"}
	VerdictHighRisk    = VerdictTier{value: "HIGH_RISK"}
)

// VerdictTierFromString reconstructs a VerdictTier from its string representation.
func VerdictTierFromString(s string) (VerdictTier, error) {
	switch s {
	case "PRIME":
		return VerdictPrime, nil
	case "BANKABLE":
		return VerdictBankable, nil
	case "SPECULATIVE":
		return VerdictSpeculative, nil
	case "HIGH_RISK":
		return VerdictHighRisk, nil
	default:
		return VerdictTier{}, fmt.Errorf("verdict tier %q: %w", s, ErrUnknownValue)
	}
}

// Rank orders tiers from best (0) to worst (3). Unset tiers rank -1.
func (v VerdictTier) Rank() int {
	switch v.value {
	case "PRIME":
		return 0
	case "BANKABLE":
		return 1
	case "SPECULATIVE":
		return 2
	case "HIGH_RISK":
		return 3
	default:
		return -1
	}
}

func (v VerdictTier) String() string { return v.value }

func (v VerdictTier) IsZero() bool { return v.value == "" }

func (v VerdictTier) Equal(other VerdictTier) bool { return v.value == other.value }
