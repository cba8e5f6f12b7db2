// Package queries contains read operations implementing the query side of the
// CQRS architecture. Query handlers read the store directly with raw SQL,
// bypassing the aggregates and the unit of work: reads have no invariants to
// protect.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves the full projection of one shipment, including
// the version callers need for optimistic-concurrency-aware clients.
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query to retrieve a shipment by ID.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to retrieve.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentQueryResponse is the full shipment projection.
// Optional fields are nil until the lifecycle populates them.
type GetShipmentQueryResponse struct {
	ID               kernel.UUID
	Status           string
	TrackingNumber   *string
	LabelURL         *string
	TotalCost        *kernel.Money
	PickupDate       *time.Time
	ExpectedDelivery *time.Time
	ActualDelivery   *time.Time
	Note             string
	Version          int
}
