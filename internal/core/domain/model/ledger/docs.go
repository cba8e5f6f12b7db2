// Package ledger contains the postal cash-ledger domain model: the shared
// CashBalance (the cash float debited on every postal registration) and the
// append-only OperationLog. The package-level invariants are that the balance
// never goes below zero and that every debit corresponds to exactly one log
// entry, with the reversal flag the only mutation a log entry ever receives.
package ledger
