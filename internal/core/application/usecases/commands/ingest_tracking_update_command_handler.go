package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// IngestTrackingUpdateCommandHandler maps carrier tracking updates onto
// shipment lifecycle events. Carrier feeds repeat themselves and arrive out of
// order, so an update that does not apply to the shipment's current status is
// a no-op, never an error: a delivered notice for an already delivered
// shipment simply confirms what we know.
//
// Mapping, conditioned on current status:
//
//	picked_up  -> carrier_pickup    only from booked
//	delivered  -> confirm_delivery  only from in_transit
//	exception  -> flag_exception    from draft, booked, in_transit
//	returned   -> cancel            only from exception
type IngestTrackingUpdateCommandHandler struct {
	uowFactory ShipmentUoWFactory
	logger     *slog.Logger
}

// NewIngestTrackingUpdateCommandHandler creates a handler for tracking updates.
func NewIngestTrackingUpdateCommandHandler(
	uowFactory ShipmentUoWFactory,
	logger *slog.Logger,
) IngestTrackingUpdateCommandHandler {
	return IngestTrackingUpdateCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle processes one tracking update.
// Applies the mapped transition when the update is applicable to the current
// status; otherwise returns nil without persisting anything.
func (h IngestTrackingUpdateCommandHandler) Handle(ctx context.Context, cmd IngestTrackingUpdateCommand) error {
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

	applied, err := h.apply(aggregate, cmd)
	if err != nil {
		return err
	}
	if !applied {
		h.logger.Debug("tracking update not applicable, skipped",
			"shipmentID", aggregate.ID().String(),
			"carrierStatus", cmd.CarrierStatus(),
			"currentStatus", aggregate.Status().String(),
		)
		return nil
	}

	if cmd.Location() != nil {
		aggregate.AppendNote(fmt.Sprintf("carrier location: %s", *cmd.Location()))
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return classifyWriteError(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return classifyWriteError(err)
	}

	return nil
}

// apply performs the transition mapped from the carrier status when it is
// applicable to the shipment's current status. Returns false when the update
// should be skipped.
func (h IngestTrackingUpdateCommandHandler) apply(
	aggregate *shipment.Shipment,
	cmd IngestTrackingUpdateCommand,
) (bool, error) {
	switch cmd.CarrierStatus() {
	case ports.CarrierStatusPickedUp:
		if aggregate.Status() != shipment.StatusBooked {
			return false, nil
		}
		return true, aggregate.MarkPickedUp()

	case ports.CarrierStatusDelivered:
		if aggregate.Status() != shipment.StatusInTransit {
			return false, nil
		}
		return true, aggregate.ConfirmDelivery(cmd.Timestamp())

	case ports.CarrierStatusException:
		if !aggregate.Status().CanApply(shipment.EventFlagException) {
			return false, nil
		}
		return true, aggregate.FlagException("carrier reported exception")

	case ports.CarrierStatusReturned:
		if aggregate.Status() != shipment.StatusException {
			return false, nil
		}
		return true, aggregate.Cancel()
	}

	return false, nil
}
