package shipment

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not created
	// through the NewShipment or RestoreShipment factory methods.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment constructor")
)

// Shipment is the aggregate root governing the shipment lifecycle from draft
// through booking, transit and delivery (or cancellation).
//
// Shipment maintains these invariants:
//   - Must have a valid unique identifier
//   - status is always a member of the valid status set and is mutated only
//     through the transition methods, which delegate to Status.Apply
//   - Once in a terminal status (delivered, cancelled) no further transition
//     is applied
//   - note is an append-only audit trail; entries are never replaced
//
// The booking side-effect fields (tracking number, label URL, cost, dates) are
// populated only as part of successful transitions. The version field carries
// the store's optimistic-concurrency token and is managed by the repository.
type Shipment struct {
	id kernel.UUID

	status Status

	// Booking side effects, populated on EventBook.
	trackingNumber   *string
	labelURL         *string
	totalCost        *kernel.Money
	pickupDate       *time.Time
	expectedDelivery *time.Time

	// Populated on EventConfirmDelivery.
	actualDelivery *time.Time

	// Append-only audit trail.
	note string

	// Optimistic-concurrency token exposed by the store.
	version int

	isConstructed bool
}

// NewShipment creates a new Shipment in draft status.
// This is the entry point used by order intake; every other status is reached
// through transition methods only.
func NewShipment(id kernel.UUID) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		status:        StatusDraft,
		isConstructed: true,
	}, nil
}

// RestoreShipment reconstructs a Shipment from persistence.
// The status must be a member of the valid set; repositories use this to
// reject rows holding values outside the status contract.
func RestoreShipment(
	id kernel.UUID,
	status Status,
	version int,
	trackingNumber *string,
	labelURL *string,
	totalCost *kernel.Money,
	pickupDate *time.Time,
	expectedDelivery *time.Time,
	actualDelivery *time.Time,
	note string,
) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	return &Shipment{
		id:               id,
		status:           status,
		version:          version,
		trackingNumber:   trackingNumber,
		labelURL:         labelURL,
		totalCost:        totalCost,
		pickupDate:       pickupDate,
		expectedDelivery: expectedDelivery,
		actualDelivery:   actualDelivery,
		note:             note,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Shipment instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// TrackingNumber returns the courier tracking number, or nil before booking.
func (s *Shipment) TrackingNumber() *string {
	return s.trackingNumber
}

// LabelURL returns the shipping label URL, or nil before booking.
func (s *Shipment) LabelURL() *string {
	return s.labelURL
}

// TotalCost returns the courier's charge for the shipment, or nil before booking.
func (s *Shipment) TotalCost() *kernel.Money {
	return s.totalCost
}

// PickupDate returns the scheduled carrier pickup date, or nil before booking.
func (s *Shipment) PickupDate() *time.Time {
	return s.pickupDate
}

// ExpectedDelivery returns the courier's delivery estimate, or nil before booking.
func (s *Shipment) ExpectedDelivery() *time.Time {
	return s.expectedDelivery
}

// ActualDelivery returns the confirmed delivery timestamp, or nil until delivered.
func (s *Shipment) ActualDelivery() *time.Time {
	return s.actualDelivery
}

// Note returns the accumulated audit trail.
func (s *Shipment) Note() string {
	return s.note
}

// Version returns the optimistic-concurrency token read from the store.
func (s *Shipment) Version() int {
	return s.version
}

// Book transitions the shipment to booked and records the courier's booking
// confirmation fields. The transition is legal only from draft.
func (s *Shipment) Book(
	trackingNumber string,
	labelURL string,
	totalCost kernel.Money,
	pickupDate time.Time,
	expectedDelivery time.Time,
) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	newStatus, err := s.status.Apply(EventBook)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.trackingNumber = &trackingNumber
	s.labelURL = &labelURL
	s.totalCost = &totalCost
	s.pickupDate = &pickupDate
	s.expectedDelivery = &expectedDelivery
	return nil
}

// MarkPickedUp transitions the shipment to in_transit.
// Legal only from booked.
func (s *Shipment) MarkPickedUp() error {
	newStatus, err := s.status.Apply(EventCarrierPickup)
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// FlagException transitions the shipment to exception and appends the reason
// to the audit trail. Legal from draft, booked and in_transit.
func (s *Shipment) FlagException(reason string) error {
	newStatus, err := s.status.Apply(EventFlagException)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.AppendNote(reason)
	return nil
}

// ResolveException transitions the shipment back to in_transit and appends
// the operator note. Legal only from exception.
func (s *Shipment) ResolveException(note string) error {
	newStatus, err := s.status.Apply(EventResolveException)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.AppendNote(note)
	return nil
}

// ConfirmDelivery transitions the shipment to delivered and records the
// delivery timestamp reported by the carrier. Legal only from in_transit.
func (s *Shipment) ConfirmDelivery(deliveredAt time.Time) error {
	newStatus, err := s.status.Apply(EventConfirmDelivery)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.actualDelivery = &deliveredAt
	return nil
}

// Cancel transitions the shipment to cancelled.
// Legal from draft, booked and exception. Cancellation is a transition, not a
// delete; the record and its audit trail are preserved.
func (s *Shipment) Cancel() error {
	newStatus, err := s.status.Apply(EventCancel)
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

// AppendNote appends an entry to the audit trail. Existing entries are never
// replaced; entries are separated by newlines. Empty entries are ignored.
func (s *Shipment) AppendNote(note string) {
	if note == "" {
		return
	}
	if s.note == "" {
		s.note = note
		return
	}
	s.note = s.note + "\n" + note
}
