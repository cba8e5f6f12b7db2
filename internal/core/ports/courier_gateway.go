package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// Carrier status vocabulary reported by the courier's tracking feed.
// This is the courier's vocabulary, not ours; the ingest operation maps it
// onto lifecycle events conditioned on the shipment's current status.
const (
	CarrierStatusPickedUp  = "picked_up"
	CarrierStatusDelivered = "delivered"
	CarrierStatusException = "exception"
	CarrierStatusReturned  = "returned"
)

// BookingConfirmation is the courier's response to a successful booking.
type BookingConfirmation struct {
	TrackingNumber   string
	LabelURL         string
	TotalCost        kernel.Money
	PickupDate       time.Time
	ExpectedDelivery time.Time
}

// TrackingUpdate is one entry from the courier's tracking feed.
type TrackingUpdate struct {
	CarrierStatus string
	Timestamp     time.Time
	Location      *string
}

// CourierGateway is the external courier service consumed by the orchestrating
// operations. Calls are network I/O with non-deterministic latency and failure
// modes; implementations must bound every call with a timeout. A timed-out
// call means the remote outcome is unknown, not failed; callers must not
// persist a status change until the outcome is confirmed.
type CourierGateway interface {
	// Book registers the shipment with the carrier and returns the booking
	// confirmation used to populate the shipment's booking fields.
	Book(ctx context.Context, aggregate *shipment.Shipment) (BookingConfirmation, error)

	// Cancel revokes a booking identified by its tracking number.
	// Also used as the compensating action when a local write fails after a
	// successful remote booking.
	Cancel(ctx context.Context, trackingNumber string) error

	// GetTracking fetches the latest tracking state for a booking.
	GetTracking(ctx context.Context, trackingNumber string) (TrackingUpdate, error)
}
