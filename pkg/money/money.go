// Package money provides an immutable currency amount for commercial terms such
// as security deposits and guarantees. Amounts default to Thai baht.
package money

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrCurrencyMismatch is returned when combining amounts in different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency validates an ISO 4217 code (three uppercase letters).
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency is NewCurrency for package-level variables; it panics on a bad code.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 code.
func (c Currency) Code() string { return c.code }

func (c Currency) String() string { return c.code }

// Currencies the sales team quotes in.
var (
	THB = MustCurrency("THB")
	USD = MustCurrency("USD")
	VND = MustCurrency("VND")
	MYR = MustCurrency("MYR")
)

// Money is an amount in a currency. The zero value is not meaningful; use New,
// NewFromString or Zero.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// NewFromString parses an amount such as "125000.50" in the given currency code.
// An empty code means THB.
func NewFromString(amount, currency string) (Money, error) {
	cur := THB
	if currency != "" {
		c, err := NewCurrency(currency)
		if err != nil {
			return Money{}, err
		}
		cur = c
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{amount: d, currency: cur}, nil
}

// Zero returns a zero amount in currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() Currency { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Add returns m + other; both must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrCurrencyMismatch, other.currency, m.currency)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Times returns m multiplied by a whole number of periods, e.g. months of billing.
func (m Money) Times(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n))), currency: m.currency}
}

// Equal compares amount and currency.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats as "<amount> <currency>" with two decimals, e.g. "375000.00 THB".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency.Code())
}
