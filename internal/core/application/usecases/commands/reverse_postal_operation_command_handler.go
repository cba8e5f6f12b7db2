package commands

import (
	"context"
)

// ReversePostalOperationCommandHandler voids a registered postal operation.
// The reversal flag and the compensating credit are written in one
// transaction. An already-reversed operation is rejected with
// ledger.ErrOperationAlreadyReversed so a double reversal can never credit
// the cost back twice.
type ReversePostalOperationCommandHandler struct {
	uowFactory LedgerUoWFactory
	owner      string
}

// NewReversePostalOperationCommandHandler creates a handler for postal reversals.
func NewReversePostalOperationCommandHandler(
	uowFactory LedgerUoWFactory,
	owner string,
) ReversePostalOperationCommandHandler {
	return ReversePostalOperationCommandHandler{
		uowFactory: uowFactory,
		owner:      owner,
	}
}

// Handle processes the reversal command.
// Fetches the log entry, asserts it has not been reversed, flags it and
// credits the cost back, all in one transaction.
func (h ReversePostalOperationCommandHandler) Handle(ctx context.Context, cmd ReversePostalOperationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()

	entry, err := ledgerRepo.GetOperation(ctx, cmd.Code())
	if err != nil {
		return err
	}

	// Fast path: a reversal of an entry already read as reversed fails before
	// any write happens. Two reversals racing on a not-yet-reversed entry both
	// pass this check; the store-side conditional flip below admits only one.
	if err = entry.MarkReversed(); err != nil {
		return err
	}

	if err = ledgerRepo.MarkOperationReversed(ctx, entry.Code()); err != nil {
		return err
	}

	if err = ledgerRepo.CreditBalance(ctx, h.owner, entry.Cost()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
