package valueobject

import "fmt"

// EstateType describes the security of the site hosting the installation.
type EstateType struct {
	value string
}

const (
	estateTier1          = "Tier-1 Estate"
	estateTier2          = "Tier-2 Estate"
	estateIndustrialZone = "Industrial Zone"
	estateStandalone     = "Standalone Site"
)

var (
	EstateTier1          = EstateType{value: estateTier1}
	EstateTier2          = EstateType{value: estateTier2}
	EstateIndustrialZone = EstateType{value: estateIndustrialZone}
	EstateStandalone     = EstateType{value: estateStandalone}
)

var validEstateTypes = map[string]EstateType{
	estateTier1:          EstateTier1,
	estateTier2:          EstateTier2,
	estateIndustrialZone: EstateIndustrialZone,
	estateStandalone:     EstateStandalone,
}

// NewEstateType parses an estate label such as "Tier-1 Estate".
func NewEstateType(s string) (EstateType, error) {
	v, ok := validEstateTypes[s]
	if !ok {
		return EstateType{}, fmt.Errorf("estate type %q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// EstateTypes lists every estate type, most secure first.
func EstateTypes() []EstateType {
	return []EstateType{EstateTier1, EstateTier2, EstateIndustrialZone, EstateStandalone}
}

func (e EstateType) String() string { return e.value }

func (e EstateType) IsZero() bool { return e.value == "" }

func (e EstateType) Equal(other EstateType) bool { return e.value == other.value }
