package ledger

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrCashBalanceIsNotConstructed is returned when a CashBalance instance was not
	// created through the NewCashBalance or RestoreCashBalance factory methods.
	ErrCashBalanceIsNotConstructed = errors.New("CashBalance must be created via NewCashBalance or RestoreCashBalance constructor")

	// ErrInsufficientFunds indicates that a debit would drive the balance below
	// zero. No mutation occurs; the request is safe to retry once funds are
	// replenished.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// CashBalance is the single shared cash float of an operating entity.
// Every postal registration debits it synchronously; the invariant is that the
// amount never goes below zero.
//
// The aggregate enforces the invariant for in-memory mutations; under
// concurrent callers the repository's atomic conditional decrement is the
// authoritative guard (the check-then-act race cannot be closed at this level).
type CashBalance struct {
	owner       string
	amount      kernel.Money
	lastUpdated time.Time

	isConstructed bool
}

// NewCashBalance creates a cash balance for an operating entity with an
// initial non-negative amount.
func NewCashBalance(owner string, amount kernel.Money) (*CashBalance, error) {
	if owner == "" {
		return nil, errs.NewValueIsRequiredError("owner")
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("amount must not be negative")
	}

	return &CashBalance{
		owner:         owner,
		amount:        amount,
		lastUpdated:   time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreCashBalance reconstructs a cash balance from persistence.
func RestoreCashBalance(owner string, amount kernel.Money, lastUpdated time.Time) (*CashBalance, error) {
	if owner == "" {
		return nil, errs.NewValueIsRequiredError("owner")
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsInvalidError("amount must not be negative")
	}

	return &CashBalance{
		owner:         owner,
		amount:        amount,
		lastUpdated:   lastUpdated,
		isConstructed: true,
	}, nil
}

// Validate ensures the CashBalance was properly constructed through a factory.
func (b *CashBalance) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrCashBalanceIsNotConstructed
	}
	return nil
}

// Owner returns the operating entity this balance belongs to.
func (b *CashBalance) Owner() string {
	return b.owner
}

// Amount returns the current balance.
func (b *CashBalance) Amount() kernel.Money {
	return b.amount
}

// LastUpdated returns the timestamp of the last balance mutation.
func (b *CashBalance) LastUpdated() time.Time {
	return b.lastUpdated
}

// CanDebit reports whether the balance covers the given cost.
func (b *CashBalance) CanDebit(cost kernel.Money) bool {
	return b.amount.Cmp(cost) >= 0
}

// Debit subtracts cost from the balance.
// Returns ErrInsufficientFunds without mutating if the balance would go negative.
func (b *CashBalance) Debit(cost kernel.Money) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidError("cost must not be negative")
	}
	if !b.CanDebit(cost) {
		return ErrInsufficientFunds
	}

	b.amount = b.amount.Sub(cost)
	b.lastUpdated = time.Now().UTC()
	return nil
}

// Credit adds amount back to the balance. Used by reversals and float top-ups.
func (b *CashBalance) Credit(amount kernel.Money) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount must not be negative")
	}

	b.amount = b.amount.Add(amount)
	b.lastUpdated = time.Now().UTC()
	return nil
}
