package commands

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"
	"shipping/internal/core/domain/services"
)

// RegisterPostalOperationResult is returned to the caller after a successful
// registration: the generated operation code, the balance left after the
// debit, and the margin earned on the operation.
type RegisterPostalOperationResult struct {
	Code       string
	NewBalance kernel.Money
	Margin     kernel.Money
}

// RegisterPostalOperationCommandHandler registers a postal send against the
// office cash ledger. The tariff is computed before anything is touched; the
// log append and the balance debit then run inside one transaction, so either
// both happen or neither does.
//
// The debit itself is an atomic conditional decrement at the store. Two
// operators registering operations at the same time race on the shared
// balance, and the store accepts only debits the balance covers, so the
// balance can never go negative no matter how the debits interleave.
type RegisterPostalOperationCommandHandler struct {
	uowFactory LedgerUoWFactory
	calculator services.TariffCalculator
	owner      string
}

// NewRegisterPostalOperationCommandHandler creates a handler for postal
// registrations. The owner names the operating entity whose cash balance is
// debited; it comes from configuration and is the same for every request the
// process serves.
func NewRegisterPostalOperationCommandHandler(
	uowFactory LedgerUoWFactory,
	calculator services.TariffCalculator,
	owner string,
) RegisterPostalOperationCommandHandler {
	return RegisterPostalOperationCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		owner:      owner,
	}
}

// Handle processes the registration command.
// Quotes the tariff, appends the operation log entry and debits the balance in
// one transaction. An insufficient balance rolls everything back and returns
// ledger.ErrInsufficientFunds: no log entry survives a rejected debit.
func (h RegisterPostalOperationCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterPostalOperationCommand,
) (RegisterPostalOperationResult, error) {
	if err := cmd.Validate(); err != nil {
		return RegisterPostalOperationResult{}, err
	}

	quote, err := h.calculator.Quote(cmd.WeightGrams(), cmd.Service(), cmd.Destination())
	if err != nil {
		return RegisterPostalOperationResult{}, err
	}

	entry, err := ledger.NewOperationLog(
		ledger.NewOperationCode(),
		cmd.WeightGrams(),
		cmd.Service(),
		cmd.Destination(),
		quote.Cost,
		quote.Revenue,
		cmd.OperatorID(),
	)
	if err != nil {
		return RegisterPostalOperationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return RegisterPostalOperationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()

	if err = ledgerRepo.AddOperation(ctx, entry); err != nil {
		return RegisterPostalOperationResult{}, err
	}

	if err = ledgerRepo.DebitBalance(ctx, h.owner, quote.Cost); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return RegisterPostalOperationResult{}, fmt.Errorf(
				"%w: cost %s exceeds available balance", ledger.ErrInsufficientFunds, quote.Cost,
			)
		}
		return RegisterPostalOperationResult{}, err
	}

	balance, err := ledgerRepo.GetBalance(ctx, h.owner)
	if err != nil {
		return RegisterPostalOperationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RegisterPostalOperationResult{}, err
	}

	return RegisterPostalOperationResult{
		Code:       entry.Code(),
		NewBalance: balance.Amount(),
		Margin:     entry.Margin(),
	}, nil
}
