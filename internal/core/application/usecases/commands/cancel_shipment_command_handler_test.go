package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelShipmentCommandHandler_Handle_DraftCancelsLocallyOnly(t *testing.T) {
	ctx := t.Context()
	testShipment := draftShipment(t)
	cmd, err := commands.NewCancelShipmentCommand(testShipment.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	gateway := new(MockCourierGateway)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, testShipment.ID()).Return(testShipment, nil).Once(),
		shipmentRepo.On("Update", ctx, testShipment).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, gateway, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, shipment.StatusCancelled, testShipment.Status())
	gateway.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	shipmentRepo.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_BookedRevokesCourierFirst(t *testing.T) {
	ctx := t.Context()
	trackingNumber := "TRK-12345"
	testShipment := restoredShipment(t, shipment.StatusBooked, &trackingNumber)
	cmd, err := commands.NewCancelShipmentCommand(testShipment.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	gateway := new(MockCourierGateway)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, testShipment.ID()).Return(testShipment, nil).Once(),
		gateway.On("Cancel", ctx, trackingNumber).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, testShipment).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, gateway, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, shipment.StatusCancelled, testShipment.Status())
	gateway.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_GatewayFailureAbortsWithoutChange(t *testing.T) {
	ctx := t.Context()
	trackingNumber := "TRK-12345"
	testShipment := restoredShipment(t, shipment.StatusBooked, &trackingNumber)
	cmd, err := commands.NewCancelShipmentCommand(testShipment.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	gateway := new(MockCourierGateway)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, testShipment.ID()).Return(testShipment, nil).Once(),
		gateway.On("Cancel", ctx, trackingNumber).Return(errors.New("courier unreachable")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, gateway, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrGatewayFailure)
	require.Equal(t, shipment.StatusBooked, testShipment.Status())
	shipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelShipmentCommandHandler_Handle_InTransitRejected(t *testing.T) {
	ctx := t.Context()
	trackingNumber := "TRK-12345"
	testShipment := restoredShipment(t, shipment.StatusInTransit, &trackingNumber)
	cmd, err := commands.NewCancelShipmentCommand(testShipment.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	gateway := new(MockCourierGateway)
	uow := new(MockShipmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, testShipment.ID()).Return(testShipment, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory, gateway, discardLogger())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, shipment.ErrIllegalTransition)
	gateway.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestCancelShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelShipmentCommand{} // not constructed properly

	factory := new(MockShipmentUoWFactory)
	gateway := new(MockCourierGateway)
	handler := commands.NewCancelShipmentCommandHandler(factory, gateway, discardLogger())

	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelShipmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
