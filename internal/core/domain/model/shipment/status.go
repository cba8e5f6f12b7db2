package shipment

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with a closed transition table to ensure
// shipments follow the correct business workflow.
//
// State transitions:
//
//	draft ──book──> booked ──carrier_pickup──> in_transit ──confirm_delivery──> delivered
//	  │               │                           │
//	  │               │                      flag_exception
//	  │          flag_exception                   │
//	flag_exception    │                           v
//	  └───────────────┴──────────────────────> exception ──resolve_exception──> in_transit
//
//	draft, booked and exception can also be cancelled.
//	delivered and cancelled are terminal: no event is legal from them.
//
// Status is a value object that validates state transitions and provides
// the exact wire strings used by the API and the persistence layer.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusDraft is the initial status assigned at shipment creation.
	// Draft shipments have no carrier booking yet.
	StatusDraft

	// StatusBooked indicates the shipment has been registered with the
	// courier and holds a tracking number and label.
	StatusBooked

	// StatusInTransit indicates the carrier has picked up the parcel.
	StatusInTransit

	// StatusException indicates a delivery problem that needs operator
	// attention before the shipment can continue.
	StatusException

	// StatusDelivered indicates the parcel reached its recipient.
	// This is a terminal state.
	StatusDelivered

	// StatusCancelled indicates the shipment was cancelled, either before
	// booking or by revoking the carrier booking. This is a terminal state.
	StatusCancelled
)

// Event represents a lifecycle event that may move a shipment between statuses.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventBook registers the shipment with the courier.
	EventBook

	// EventCarrierPickup records that the carrier collected the parcel.
	EventCarrierPickup

	// EventFlagException records a delivery problem.
	EventFlagException

	// EventResolveException returns an exception shipment to transit.
	EventResolveException

	// EventConfirmDelivery records successful delivery.
	EventConfirmDelivery

	// EventCancel cancels the shipment.
	EventCancel
)

// ErrIllegalTransition is the sentinel for transitions absent from the table.
// Use errors.Is to classify; the concrete *IllegalTransitionError carries the
// offending (status, event) pair.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError indicates that the requested event is not legal from
// the shipment's current status. It is always recoverable by the caller
// re-reading the current status; it is never retried automatically.
type IllegalTransitionError struct {
	From  Status
	Event Event
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given pair.
func NewIllegalTransitionError(from Status, event Event) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, Event: event}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: cannot apply %s from %s", e.Event, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// getStatusStrings returns a map of Status values to their wire representations.
// These strings are part of the external contract: the API and the persistence
// layer use them verbatim.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusDraft:     "draft",
		StatusBooked:    "booked",
		StatusInTransit: "in_transit",
		StatusException: "exception",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusDraft:     "draft",
		StatusBooked:    "booked",
		StatusInTransit: "in_transit",
		StatusException: "exception",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// getEventStrings returns a map of Event values to their string representations.
func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:          "unknown",
		EventBook:             "book",
		EventCarrierPickup:    "carrier_pickup",
		EventFlagException:    "flag_exception",
		EventResolveException: "resolve_exception",
		EventConfirmDelivery:  "confirm_delivery",
		EventCancel:           "cancel",
	}
}

// transitions returns the full legal transition table (status × event → status).
// Absence of an entry means the transition is illegal. delivered and cancelled
// have no entries at all, making them terminal.
func transitions() map[Status]map[Event]Status {
	return map[Status]map[Event]Status{
		StatusDraft: {
			EventBook:          StatusBooked,
			EventFlagException: StatusException,
			EventCancel:        StatusCancelled,
		},
		StatusBooked: {
			EventCarrierPickup: StatusInTransit,
			EventFlagException: StatusException,
			EventCancel:        StatusCancelled,
		},
		StatusInTransit: {
			EventFlagException:   StatusException,
			EventConfirmDelivery: StatusDelivered,
		},
		StatusException: {
			EventResolveException: StatusInTransit,
			EventCancel:           StatusCancelled,
		},
	}
}

// Apply returns the status reached by applying event to the current status.
// It is a pure function, total over all (status, event) pairs: every pair
// either yields a status present in the transition table or an
// IllegalTransitionError. It never returns a status outside the valid set.
//
// Example:
//
//	next, err := shipment.StatusDraft.Apply(shipment.EventBook)
//	if err != nil {
//	    // transition not allowed from current status
//	}
func (s Status) Apply(event Event) (Status, error) {
	if next, ok := transitions()[s][event]; ok {
		return next, nil
	}
	return StatusUnknown, NewIllegalTransitionError(s, event)
}

// CanApply reports whether event is legal from the current status without
// performing the transition. Used for preconditions and no-op detection.
func (s Status) CanApply(event Event) bool {
	_, ok := transitions()[s][event]
	return ok
}

// IsTerminal reports whether the status admits no further transitions.
// Only delivered and cancelled are terminal.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0 && s.Validate() == nil
}

// Validate checks if the Status value is a member of the valid set.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on any Status value, including
// invalid ones (which yield "unknown").
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire string into a Status.
// Only members of the valid set are accepted; anything else is rejected,
// which is how the persistence layer refuses unknown status values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// String returns the string representation of the event.
// Implements fmt.Stringer; invalid events yield "unknown".
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "unknown"
}
