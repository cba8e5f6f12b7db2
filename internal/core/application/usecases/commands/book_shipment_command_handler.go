package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// BookShipmentCommandHandler orchestrates booking a shipment with the external
// courier. The courier call happens before any local write: a draft shipment
// is persisted as booked only after the courier has confirmed the booking.
//
// If the local write fails after a successful courier booking, the handler
// compensates by cancelling the booking at the courier. A failed compensation
// leaves the courier and the store disagreeing, so it is reported as
// ErrReconciliationRequired and must reach a human operator.
//
// Example:
//
//	handler := NewBookShipmentCommandHandler(uowFactory, gateway, logger)
//	cmd, _ := NewBookShipmentCommand(shipmentID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, shipment.ErrIllegalTransition):
//	    // not bookable from its current status
//	case errors.Is(err, ErrGatewayFailure):
//	    // courier unreachable, nothing persisted, safe to retry
//	case errors.Is(err, ErrReconciliationRequired):
//	    // courier holds a booking we could not record: page someone
//	}
type BookShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	gateway    ports.CourierGateway
	logger     *slog.Logger
}

// NewBookShipmentCommandHandler creates a handler for shipment booking.
// Requires a ShipmentUoWFactory for transactional persistence, the courier
// gateway for the external booking call, and a logger for reconciliation alerts.
func NewBookShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	gateway ports.CourierGateway,
	logger *slog.Logger,
) BookShipmentCommandHandler {
	return BookShipmentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		logger:     logger,
	}
}

// Handle processes the booking command.
// Validates the transition is legal before calling the courier, books with the
// courier, then persists the booked shipment. The courier call failing or
// timing out leaves the shipment untouched in draft. A failed local write
// triggers compensation at the courier.
//
// The read happens outside any transaction and the transaction opens only for
// the write, so no database transaction stays open across the courier call.
// The version carried from the read makes the write conditional: a concurrent
// change between read and write fails the update instead of overwriting it.
func (h BookShipmentCommandHandler) Handle(ctx context.Context, cmd BookShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	// Reject an illegal transition before touching the courier, so a shipment
	// that cannot be booked never acquires a remote booking needing undo.
	if _, err = aggregate.Status().Apply(shipment.EventBook); err != nil {
		return err
	}

	confirmation, err := h.gateway.Book(ctx, aggregate)
	if err != nil {
		return fmt.Errorf("%w: book: %w", ErrGatewayFailure, err)
	}

	if err = aggregate.Book(
		confirmation.TrackingNumber,
		confirmation.LabelURL,
		confirmation.TotalCost,
		confirmation.PickupDate,
		confirmation.ExpectedDelivery,
	); err != nil {
		return h.compensate(ctx, confirmation.TrackingNumber, err)
	}

	if err = uow.Begin(ctx); err != nil {
		return h.compensate(ctx, confirmation.TrackingNumber, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return h.compensate(ctx, confirmation.TrackingNumber, classifyWriteError(err))
	}

	if err = uow.Commit(ctx); err != nil {
		return h.compensate(ctx, confirmation.TrackingNumber, classifyWriteError(err))
	}

	return nil
}

// compensate cancels the courier booking after a failed local write.
// On success the original failure is returned unchanged; on failure the
// inconsistency is escalated to ErrReconciliationRequired.
func (h BookShipmentCommandHandler) compensate(ctx context.Context, trackingNumber string, cause error) error {
	if cancelErr := h.gateway.Cancel(ctx, trackingNumber); cancelErr != nil {
		h.logger.Error("booking compensation failed, courier holds an unrecorded booking",
			"trackingNumber", trackingNumber,
			"writeError", cause,
			"cancelError", cancelErr,
		)
		return fmt.Errorf("%w: tracking number %s: %w", ErrReconciliationRequired, trackingNumber, cause)
	}

	h.logger.Warn("booking compensated after failed local write",
		"trackingNumber", trackingNumber,
		"writeError", cause,
	)
	return cause
}

// classifyWriteError maps a stale-version repository error onto the retryable
// concurrency conflict class. Other write errors pass through unchanged.
func classifyWriteError(err error) error {
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return fmt.Errorf("%w: %w", ErrConcurrencyConflict, err)
	}
	return err
}
