package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrBookShipmentCommandIsNotConstructed = errors.New(
	"BookShipmentCommand must be created via NewBookShipmentCommand constructor",
)

// BookShipmentCommand represents a request to register a draft shipment with
// the external courier and move it to booked.
//
// Example:
//
//	cmd, err := NewBookShipmentCommand(shipmentID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, shipment.ErrIllegalTransition) means the shipment
//	    // is already booked: treat as "already done", not as a hard failure
//	}
type BookShipmentCommand struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewBookShipmentCommand creates a command to book a shipment with the courier.
// Validates that the shipment ID is a properly constructed UUID.
func NewBookShipmentCommand(shipmentID kernel.UUID) (BookShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return BookShipmentCommand{}, err
	}

	return BookShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrBookShipmentCommandIsNotConstructed if validation fails.
func (c BookShipmentCommand) Validate() error {
	return c.guard.Validate(ErrBookShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to book.
func (c BookShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
