package valueobject

import "fmt"

// DebtLevel is the underwriter's read of the counterparty's leverage.
type DebtLevel struct {
	value string
}

const (
	debtLow    = "Low"
	debtMedium = "Medium"
	debtHigh   = "High"
)

var (
	DebtLow    = DebtLevel{value: debtLow}
	DebtMedium = DebtLevel{value: debtMedium}
	DebtHigh   = DebtLevel{value: debtHigh}
)

var validDebtLevels = map[string]DebtLevel{
	debtLow:    DebtLow,
	debtMedium: DebtMedium,
	debtHigh:   DebtHigh,
}

// NewDebtLevel parses "Low", "Medium" or "High".
func NewDebtLevel(s string) (DebtLevel, error) {
	v, ok := validDebtLevels[s]
	if !ok {
		return DebtLevel{}, fmt.Errorf("debt level %q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// DebtLevels lists every debt level, least leveraged first.
func DebtLevels() []DebtLevel {
	return []DebtLevel{DebtLow, DebtMedium, DebtHigh}
}

func (d DebtLevel) String() string { return d.value }

func (d DebtLevel) IsZero() bool { return d.value == "" }

func (d DebtLevel) Equal(other DebtLevel) bool { return d.value == other.value }
