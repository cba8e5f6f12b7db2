package commands

import "errors"

// Cross-cutting error classes shared by the command handlers.
// Business errors owned by a single aggregate live in their domain package
// (shipment.ErrIllegalTransition, ledger.ErrInsufficientFunds,
// ledger.ErrOperationAlreadyReversed).
var (
	// ErrGatewayFailure indicates the external courier call failed or timed
	// out. The whole operation is retryable by the caller; it is never
	// partially retried. On timeout the remote outcome is unknown, so nothing
	// was persisted locally.
	ErrGatewayFailure = errors.New("courier gateway failure")

	// ErrConcurrencyConflict indicates an optimistic-concurrency version
	// mismatch: another caller modified the aggregate between read and write.
	// Always safely retryable by re-fetching and re-validating.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")

	// ErrReconciliationRequired indicates a failed compensation: an external
	// side effect succeeded, the local write failed, and undoing the side
	// effect failed too. State is inconsistent and a human operator must
	// reconcile. This error must never be downgraded to a generic failure and
	// must block automatic retries.
	ErrReconciliationRequired = errors.New("compensation failed, manual reconciliation required")

	// ErrShipmentNotInException indicates ResolveException was called for a
	// shipment whose current status is not exception. Distinguishable from
	// the generic FSM error so callers see the business precondition that
	// failed.
	ErrShipmentNotInException = errors.New("shipment is not in exception status")
)
