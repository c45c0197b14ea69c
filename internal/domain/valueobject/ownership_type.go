package valueobject

import "fmt"

// OwnershipType describes who stands behind the counterparty.
type OwnershipType struct {
	value string
}

const (
	ownershipMNCListed    = "MNC/Listed"
	ownershipJVWithMNC    = "JV with MNC"
	ownershipPrivateLocal = "Private Local Co"
	ownershipStartupSME   = "Startup/SME"
)

var (
	OwnershipMNCListed    = OwnershipType{value: ownershipMNCListed}
	OwnershipJVWithMNC    = OwnershipType{value: ownershipJVWithMNC}
	OwnershipPrivateLocal = OwnershipType{value: ownershipPrivateLocal}
	OwnershipStartupSME   = OwnershipType{value: ownershipStartupSME}
)

var validOwnershipTypes = map[string]OwnershipType{
	ownershipMNCListed:    OwnershipMNCListed,
	ownershipJVWithMNC:    OwnershipJVWithMNC,
	ownershipPrivateLocal: OwnershipPrivateLocal,
	ownershipStartupSME:   OwnershipStartupSME,
}

// NewOwnershipType parses an ownership label such as "MNC/Listed".
func NewOwnershipType(s string) (OwnershipType, error) {
	v, ok := validOwnershipTypes[s]
	if !ok {
		return OwnershipType{}, fmt.Errorf("ownership type %q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// OwnershipTypes lists every ownership type, strongest backing first.
func OwnershipTypes() []OwnershipType {
	return []OwnershipType{OwnershipMNCListed, OwnershipJVWithMNC, OwnershipPrivateLocal, OwnershipStartupSME}
}

func (o OwnershipType) String() string { return o.value }

func (o OwnershipType) IsZero() bool { return o.value == "" }

func (o OwnershipType) Equal(other OwnershipType) bool { return o.value == other.value }
