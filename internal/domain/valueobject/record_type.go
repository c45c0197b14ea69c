package valueobject

import "fmt"

// RecordType names the kind of CRM business record a classification or
// assessment is attached to.
type RecordType struct {
	value string
}

var (
	RecordTypeAccount     = RecordType{value: "ACCOUNT"}
	RecordTypeOpportunity = RecordType{value: "OPPORTUNITY"}
)

// NewRecordType parses "ACCOUNT" or "OPPORTUNITY".
func NewRecordType(s string) (RecordType, error) {
	switch s {
	case "ACCOUNT":
		return RecordTypeAccount, nil
	case "OPPORTUNITY":
		return RecordTypeOpportunity, nil
	default:
		return RecordType{}, fmt.Errorf("record type %q: %w", s, ErrUnknownValue)
	}
}

func (r RecordType) String() string { return r.value }

func (r RecordType) IsZero() bool { return r.value == "" }

func (r RecordType) Equal(other RecordType) bool { return r.value == other.value }
