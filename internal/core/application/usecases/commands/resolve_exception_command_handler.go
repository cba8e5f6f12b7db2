package commands

import (
	"context"
	"fmt"

	"shipping/internal/core/domain/model/shipment"
)

// ResolveExceptionCommandHandler returns an exception shipment to transit.
// The precondition that the shipment is currently in exception is checked
// explicitly so callers receive ErrShipmentNotInException rather than the
// generic transition error, which tells the operator exactly which business
// rule failed.
type ResolveExceptionCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewResolveExceptionCommandHandler creates a handler for exception resolution.
func NewResolveExceptionCommandHandler(uowFactory ShipmentUoWFactory) ResolveExceptionCommandHandler {
	return ResolveExceptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command.
// Rejects shipments not in exception status, transitions the shipment back to
// in_transit, appends the operator note and persists with a version check.
func (h ResolveExceptionCommandHandler) Handle(ctx context.Context, cmd ResolveExceptionCommand) error {
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

	if aggregate.Status() != shipment.StatusException {
		return fmt.Errorf("%w: current status is %s", ErrShipmentNotInException, aggregate.Status())
	}

	if err = aggregate.ResolveException(cmd.Note()); err != nil {
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
