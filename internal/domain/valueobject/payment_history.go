package valueobject

import "fmt"

// PaymentHistory grades how reliably the counterparty has paid in the past.
type PaymentHistory struct {
	value string
}

const (
	paymentExcellent = "Excellent"
	paymentGood      = "Good"
	paymentFair      = "Fair"
	paymentPoor      = "Poor"
)

var (
	PaymentExcellent = PaymentHistory{value: paymentExcellent}
	PaymentGood      = PaymentHistory{value: paymentGood}
	PaymentFair      = PaymentHistory{value: paymentFair}
	PaymentPoor      = PaymentHistory{value: paymentPoor}
)

var validPaymentHistories = map[string]PaymentHistory{
	paymentExcellent: PaymentExcellent,
	paymentGood:      PaymentGood,
	paymentFair:      PaymentFair,
	paymentPoor:      PaymentPoor,
}

// NewPaymentHistory parses "Excellent", "Good", "Fair" or "Poor".
func NewPaymentHistory(s string) (PaymentHistory, error) {
	v, ok := validPaymentHistories[s]
	if !ok {
		return PaymentHistory{}, fmt.Errorf("payment history %q: %w", s, ErrUnknownValue)
	}
	return v, nil
}

// PaymentHistories lists every grade, best first.
func PaymentHistories() []PaymentHistory {
	return []PaymentHistory{PaymentExcellent, PaymentGood, PaymentFair, PaymentPoor}
}

func (p PaymentHistory) String() string { return p.value }

func (p PaymentHistory) IsZero() bool { return p.value == "" }

func (p PaymentHistory) Equal(other PaymentHistory) bool { return p.value == other.value }
