// Package ports defines the contracts between the application core and
// infrastructure: persistence of shipments and the cash ledger, the external
// courier gateway, and the unit of work controlling transaction boundaries.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
//
// Shipment records are independently mutable per id; writes carry the
// aggregate's version for optimistic concurrency. No global lock is involved.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// The shipment must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	// The write is conditional on the version the aggregate was read at: a
	// stale write fails with an error unwrapping errs.ErrVersionIsInvalid,
	// which callers surface as a retryable concurrency conflict.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier,
	// including its current version.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllTrackable retrieves all shipments in booked or in_transit status.
	// Used by the tracking poll job to refresh carrier state.
	GetAllTrackable(ctx context.Context) ([]*shipment.Shipment, error)
}
