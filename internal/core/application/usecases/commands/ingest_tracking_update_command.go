package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrIngestTrackingUpdateCommandIsNotConstructed = errors.New(
	"IngestTrackingUpdateCommand must be created via NewIngestTrackingUpdateCommand constructor",
)

// IngestTrackingUpdateCommand represents one tracking update received from the
// courier, either pushed via webhook or pulled by the polling job. The carrier
// status is the courier's vocabulary and is mapped onto lifecycle events by
// the handler.
type IngestTrackingUpdateCommand struct { //nolint:recvcheck //using for validation
	shipmentID    kernel.UUID
	carrierStatus string
	timestamp     time.Time
	location      *string

	guard guard.ConstructorGuard
}

// NewIngestTrackingUpdateCommand creates a command carrying one tracking update.
// The carrier status must be one of the courier's known values; unknown values
// are rejected here so the handler only ever maps a closed vocabulary.
func NewIngestTrackingUpdateCommand(
	shipmentID kernel.UUID,
	carrierStatus string,
	timestamp time.Time,
	location *string,
) (IngestTrackingUpdateCommand, error) {
	command := IngestTrackingUpdateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setCarrierStatus(carrierStatus),
		command.setTimestamp(timestamp),
	); err != nil {
		return IngestTrackingUpdateCommand{}, err
	}

	command.location = location
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestTrackingUpdateCommand) Validate() error {
	return c.guard.Validate(ErrIngestTrackingUpdateCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment the update refers to.
func (c IngestTrackingUpdateCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// CarrierStatus returns the courier's status value.
func (c IngestTrackingUpdateCommand) CarrierStatus() string {
	return c.carrierStatus
}

// Timestamp returns when the carrier recorded the update.
func (c IngestTrackingUpdateCommand) Timestamp() time.Time {
	return c.timestamp
}

// Location returns the carrier-reported location, or nil when absent.
func (c IngestTrackingUpdateCommand) Location() *string {
	return c.location
}

func (c *IngestTrackingUpdateCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *IngestTrackingUpdateCommand) setCarrierStatus(carrierStatus string) error {
	switch carrierStatus {
	case ports.CarrierStatusPickedUp,
		ports.CarrierStatusDelivered,
		ports.CarrierStatusException,
		ports.CarrierStatusReturned:
		c.carrierStatus = carrierStatus
		return nil
	default:
		return errs.NewValueIsInvalidError("carrierStatus")
	}
}

func (c *IngestTrackingUpdateCommand) setTimestamp(timestamp time.Time) error {
	if timestamp.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}

	c.timestamp = timestamp
	return nil
}
