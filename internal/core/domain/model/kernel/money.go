package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in cents.
// Storing cents as int64 keeps all ledger and tariff arithmetic exact;
// floating point never enters the domain model.
//
// The zero value (0 cents) is a valid amount. Negative amounts are
// representable because margins and reversals need them, but constructors
// that require non-negative values are provided for balances and costs.
//
// Example usage:
//
//	cost := kernel.MoneyFromCents(1250)       // 12.50
//	price, err := kernel.NewMoney(20, 0)      // 20.00
//	margin := price.Sub(cost)                 // 7.50
type Money struct {
	cents int64
}

// NewMoney creates a Money value from whole units and cents.
// Cents must be in [0, 99]; units may be negative, in which case the
// resulting amount is negative.
//
// Example:
//
//	m, err := kernel.NewMoney(12, 50) // 12.50
func NewMoney(units int64, cents int64) (Money, error) {
	if cents < 0 || cents > 99 {
		return Money{}, errs.NewValueIsOutOfRangeError("cents", cents, 0, 99)
	}
	if units < 0 {
		return Money{cents: units*100 - cents}, nil
	}
	return Money{cents: units*100 + cents}, nil
}

// MoneyFromCents creates a Money value directly from a cent amount.
// Used when reconstructing amounts from persistence.
func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts. The result may be negative.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Cmp compares two amounts. It returns -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the decimal representation of the amount, e.g. "12.50" or "-0.99".
func (m Money) String() string {
	cents := m.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
