package ledger

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrOperationLogIsNotConstructed is returned when an OperationLog instance was
	// not created through the NewOperationLog or RestoreOperationLog factory methods.
	ErrOperationLogIsNotConstructed = errors.New("OperationLog must be created via NewOperationLog or RestoreOperationLog constructor")

	// ErrOperationAlreadyReversed indicates a reversal was requested for an
	// operation whose compensating rollback already ran. Reversals are
	// idempotent-checked: the second attempt is a distinct business error,
	// not a double credit.
	ErrOperationAlreadyReversed = errors.New("postal operation is already reversed")
)

// OperationLog is an append-only record of a postal registration.
// Exactly one entry exists per debit of the cash balance; cost is the postal
// service's charge (COGS), revenue the customer price, margin their difference.
//
// Entries are never mutated after creation except for the reversal flag, which
// is set once when a compensating rollback credits the cost back.
type OperationLog struct {
	code        string
	weightGrams int
	service     string
	destination string
	cost        kernel.Money
	revenue     kernel.Money
	margin      kernel.Money
	operatorID  kernel.UUID
	isReversed  bool
	createdAt   time.Time

	isConstructed bool
}

// NewOperationCode generates a unique postal operation code.
func NewOperationCode() string {
	return fmt.Sprintf("PO-%s", uuid.NewString())
}

// NewOperationLog creates a log entry for a postal registration.
// Margin is derived from revenue and cost; callers never supply it.
func NewOperationLog(
	code string,
	weightGrams int,
	service string,
	destination string,
	cost kernel.Money,
	revenue kernel.Money,
	operatorID kernel.UUID,
) (*OperationLog, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if weightGrams <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("weightGrams", fmt.Errorf("%d is not greater than 0", weightGrams))
	}
	if service == "" {
		return nil, errs.NewValueIsRequiredError("service")
	}
	if destination == "" {
		return nil, errs.NewValueIsRequiredError("destination")
	}
	if cost.IsNegative() || revenue.IsNegative() {
		return nil, errs.NewValueIsInvalidError("cost and revenue must not be negative")
	}
	if err := operatorID.Validate(); err != nil {
		return nil, err
	}

	return &OperationLog{
		code:          code,
		weightGrams:   weightGrams,
		service:       service,
		destination:   destination,
		cost:          cost,
		revenue:       revenue,
		margin:        revenue.Sub(cost),
		operatorID:    operatorID,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOperationLog reconstructs a log entry from persistence.
func RestoreOperationLog(
	code string,
	weightGrams int,
	service string,
	destination string,
	cost kernel.Money,
	revenue kernel.Money,
	operatorID kernel.UUID,
	isReversed bool,
	createdAt time.Time,
) (*OperationLog, error) {
	entry, err := NewOperationLog(code, weightGrams, service, destination, cost, revenue, operatorID)
	if err != nil {
		return nil, err
	}

	entry.isReversed = isReversed
	entry.createdAt = createdAt
	return entry, nil
}

// Validate ensures the OperationLog was properly constructed through a factory.
func (l *OperationLog) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrOperationLogIsNotConstructed
	}
	return nil
}

// Code returns the unique operation code.
func (l *OperationLog) Code() string {
	return l.code
}

// WeightGrams returns the registered parcel weight.
func (l *OperationLog) WeightGrams() int {
	return l.weightGrams
}

// Service returns the postal service level the parcel was registered with.
func (l *OperationLog) Service() string {
	return l.service
}

// Destination returns the destination zone the tariff was computed for.
func (l *OperationLog) Destination() string {
	return l.destination
}

// Cost returns the postal service's charge (COGS).
func (l *OperationLog) Cost() kernel.Money {
	return l.cost
}

// Revenue returns the price charged to the customer.
func (l *OperationLog) Revenue() kernel.Money {
	return l.revenue
}

// Margin returns revenue minus cost.
func (l *OperationLog) Margin() kernel.Money {
	return l.margin
}

// OperatorID returns the operator who registered the operation.
func (l *OperationLog) OperatorID() kernel.UUID {
	return l.operatorID
}

// IsReversed reports whether a compensating rollback credited the cost back.
func (l *OperationLog) IsReversed() bool {
	return l.isReversed
}

// CreatedAt returns the registration timestamp.
func (l *OperationLog) CreatedAt() time.Time {
	return l.createdAt
}

// MarkReversed flags the entry as reversed.
// Returns ErrOperationAlreadyReversed if the flag is already set: a second
// reversal must fail so the cost is never credited back twice.
func (l *OperationLog) MarkReversed() error {
	if l.isReversed {
		return ErrOperationAlreadyReversed
	}

	l.isReversed = true
	return nil
}
