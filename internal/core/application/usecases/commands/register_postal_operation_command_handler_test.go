package commands_test

import (
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOwner = "office-main"

func registerCommand(t *testing.T) commands.RegisterPostalOperationCommand {
	t.Helper()
	cmd, err := commands.NewRegisterPostalOperationCommand(
		500, services.ServiceRegistered, services.ZoneDomestic, kernel.NewUUID(),
	)
	require.NoError(t, err)
	return cmd
}

func restoredBalance(t *testing.T, cents int64) *ledger.CashBalance {
	t.Helper()
	balance, err := ledger.RestoreCashBalance(
		testOwner, kernel.MoneyFromCents(cents), time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return balance
}

func TestRegisterPostalOperationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := registerCommand(t)

	// registered/domestic up to 1kg: cost 5.00, revenue 7.50
	expectedCost := kernel.MoneyFromCents(500)

	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockLedgerUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("AddOperation", ctx, mock.AnythingOfType("*ledger.OperationLog")).Return(nil).Once(),
		ledgerRepo.On("DebitBalance", ctx, testOwner, expectedCost).Return(nil).Once(),
		ledgerRepo.On("GetBalance", ctx, testOwner).Return(restoredBalance(t, 9500), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPostalOperationCommandHandler(
		factory, services.NewTariffCalculator(), testOwner,
	)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotEmpty(t, result.Code)
	require.Equal(t, kernel.MoneyFromCents(9500), result.NewBalance)
	require.Equal(t, kernel.MoneyFromCents(250), result.Margin)
	ledgerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRegisterPostalOperationCommandHandler_Handle_LogEntryMatchesDebit(t *testing.T) {
	ctx := t.Context()
	cmd := registerCommand(t)

	var logged *ledger.OperationLog

	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockLedgerUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LedgerRepository").Return(ledgerRepo).Once()
	ledgerRepo.On("AddOperation", ctx, mock.AnythingOfType("*ledger.OperationLog")).
		Run(func(args mock.Arguments) {
			logged = args.Get(1).(*ledger.OperationLog)
		}).Return(nil).Once()
	ledgerRepo.On("DebitBalance", ctx, testOwner, mock.AnythingOfType("kernel.Money")).Return(nil).Once()
	ledgerRepo.On("GetBalance", ctx, testOwner).Return(restoredBalance(t, 9500), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPostalOperationCommandHandler(
		factory, services.NewTariffCalculator(), testOwner,
	)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, logged)
	require.Equal(t, result.Code, logged.Code())
	require.Equal(t, kernel.MoneyFromCents(500), logged.Cost())
	require.Equal(t, kernel.MoneyFromCents(750), logged.Revenue())
	require.Equal(t, kernel.MoneyFromCents(250), logged.Margin())
	require.False(t, logged.IsReversed())

	debitCall := ledgerRepo.Calls[1]
	require.Equal(t, "DebitBalance", debitCall.Method)
	require.True(t, logged.Cost().IsEqual(debitCall.Arguments.Get(2).(kernel.Money)))
}

func TestRegisterPostalOperationCommandHandler_Handle_InsufficientFunds(t *testing.T) {
	ctx := t.Context()
	cmd := registerCommand(t)

	ledgerRepo := new(MockLedgerRepository)
	uow := new(MockLedgerUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LedgerRepository").Return(ledgerRepo).Once(),
		ledgerRepo.On("AddOperation", ctx, mock.AnythingOfType("*ledger.OperationLog")).Return(nil).Once(),
		ledgerRepo.On("DebitBalance", ctx, testOwner, kernel.MoneyFromCents(500)).
			Return(ledger.ErrInsufficientFunds).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterPostalOperationCommandHandler(
		factory, services.NewTariffCalculator(), testOwner,
	)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestRegisterPostalOperationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RegisterPostalOperationCommand{} // not constructed properly

	factory := new(MockLedgerUoWFactory)
	handler := commands.NewRegisterPostalOperationCommandHandler(
		factory, services.NewTariffCalculator(), testOwner,
	)

	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRegisterPostalOperationCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestRegisterPostalOperationCommand_RejectsBadInput(t *testing.T) {
	operatorID := kernel.NewUUID()

	tests := []struct {
		name        string
		weightGrams int
		service     string
		destination string
	}{
		{"zero weight", 0, services.ServiceStandard, services.ZoneDomestic},
		{"negative weight", -1, services.ServiceStandard, services.ZoneDomestic},
		{"weight above limit", services.MaxWeightGrams + 1, services.ServiceStandard, services.ZoneDomestic},
		{"unknown service", 500, "priority", services.ZoneDomestic},
		{"unknown zone", 500, services.ServiceStandard, "moon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewRegisterPostalOperationCommand(
				tt.weightGrams, tt.service, tt.destination, operatorID,
			)
			require.Error(t, err)
		})
	}
}
