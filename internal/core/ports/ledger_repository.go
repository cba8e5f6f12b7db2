package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"
)

// LedgerRepository defines the persistence contract for the postal cash ledger:
// the single shared cash balance per operating entity and the append-only
// operation log.
//
// The balance is the only truly shared mutable state in the system. Its debit
// primitive is an atomic conditional decrement at the store, so the
// balance-check-then-debit sequence is never two separate round trips.
type LedgerRepository interface {
	// GetBalance retrieves the cash balance of an operating entity.
	GetBalance(ctx context.Context, owner string) (*ledger.CashBalance, error)

	// DebitBalance atomically decrements the balance by cost, conditional on
	// the balance covering it. Returns ledger.ErrInsufficientFunds without any
	// mutation when it does not; concurrent debits can never drive the
	// balance negative.
	DebitBalance(ctx context.Context, owner string, cost kernel.Money) error

	// CreditBalance atomically increments the balance. Used by reversals and
	// float top-ups.
	CreditBalance(ctx context.Context, owner string, amount kernel.Money) error

	// AddOperation appends a postal operation log entry.
	// The entry's code must be unique; the log is append-only.
	AddOperation(ctx context.Context, entry *ledger.OperationLog) error

	// GetOperation retrieves a log entry by its operation code.
	GetOperation(ctx context.Context, code string) (*ledger.OperationLog, error)

	// MarkOperationReversed sets the reversal flag on a log entry, conditional
	// on the flag not being set yet; a flag already set returns
	// ledger.ErrOperationAlreadyReversed without any mutation. The flag is the
	// only mutation the log ever receives.
	MarkOperationReversed(ctx context.Context, code string) error
}
