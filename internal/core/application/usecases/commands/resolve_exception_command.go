package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrResolveExceptionCommandIsNotConstructed = errors.New(
	"ResolveExceptionCommand must be created via NewResolveExceptionCommand constructor",
)

// ResolveExceptionCommand represents an operator's request to resolve a
// delivery exception and return the shipment to transit. The note documents
// what was done and is appended to the shipment's audit trail.
type ResolveExceptionCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

// NewResolveExceptionCommand creates a command to resolve a shipment exception.
// The operator note is required: an exception is never resolved silently.
func NewResolveExceptionCommand(shipmentID kernel.UUID, note string) (ResolveExceptionCommand, error) {
	command := ResolveExceptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setNote(note),
	); err != nil {
		return ResolveExceptionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveExceptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveExceptionCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to resolve.
func (c ResolveExceptionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Note returns the operator's resolution note.
func (c ResolveExceptionCommand) Note() string {
	return c.note
}

func (c *ResolveExceptionCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *ResolveExceptionCommand) setNote(note string) error {
	if note == "" {
		return errs.NewValueIsRequiredError("note")
	}

	c.note = note
	return nil
}
