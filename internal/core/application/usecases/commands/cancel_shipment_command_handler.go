package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// CancelShipmentCommandHandler orchestrates shipment cancellation.
//
// For a shipment holding a courier booking the remote side is revoked first:
// the courier cancellation must succeed before the local status changes. If
// the courier call fails the local record is left untouched, so the system
// never shows cancelled while the carrier still plans a pickup. Draft
// shipments have no booking and cancel locally only.
//
// Example:
//
//	handler := NewCancelShipmentCommandHandler(uowFactory, gateway, logger)
//	cmd, _ := NewCancelShipmentCommand(shipmentID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrGatewayFailure) {
//	    // courier refused or was unreachable: shipment is still active
//	}
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	gateway    ports.CourierGateway
	logger     *slog.Logger
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	gateway ports.CourierGateway,
	logger *slog.Logger,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
// Validates the transition is legal, revokes the courier booking when one
// exists, then persists the cancelled status. Terminal and in-transit
// shipments are rejected with shipment.ErrIllegalTransition before any
// courier call is made.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if _, err = aggregate.Status().Apply(shipment.EventCancel); err != nil {
		return err
	}

	// Revoke the courier booking before the local write. A shipment that has
	// never been booked carries no tracking number and skips the courier.
	if trackingNumber := aggregate.TrackingNumber(); trackingNumber != nil {
		if err = h.gateway.Cancel(ctx, *trackingNumber); err != nil {
			h.logger.Warn("courier cancellation failed, shipment left unchanged",
				"shipmentID", aggregate.ID().String(),
				"trackingNumber", *trackingNumber,
				"error", err,
			)
			return fmt.Errorf("%w: cancel: %w", ErrGatewayFailure, err)
		}
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return classifyWriteError(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return classifyWriteError(err)
	}

	return nil
}
