package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrRegisterPostalOperationCommandIsNotConstructed = errors.New(
	"RegisterPostalOperationCommand must be created via NewRegisterPostalOperationCommand constructor",
)

// RegisterPostalOperationCommand represents a counter operator registering a
// postal send: a parcel of a given weight, service level and destination zone.
//
// Example:
//
//	cmd, err := NewRegisterPostalOperationCommand(500, services.ServiceRegistered,
//	    services.ZoneDomestic, operatorID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ledger.ErrInsufficientFunds) {
//	    // cash float does not cover the tariff: top up before retrying
//	}
type RegisterPostalOperationCommand struct { //nolint:recvcheck //using for validation
	weightGrams int
	service     string
	destination string
	operatorID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterPostalOperationCommand creates a command to register a postal operation.
// Weight must be positive and within the accepted range; service and destination
// must be members of the tariff vocabulary.
func NewRegisterPostalOperationCommand(
	weightGrams int,
	service string,
	destination string,
	operatorID kernel.UUID,
) (RegisterPostalOperationCommand, error) {
	command := RegisterPostalOperationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setWeightGrams(weightGrams),
		command.setService(service),
		command.setDestination(destination),
		command.setOperatorID(operatorID),
	); err != nil {
		return RegisterPostalOperationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPostalOperationCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPostalOperationCommandIsNotConstructed)
}

// WeightGrams returns the parcel weight in grams.
func (c RegisterPostalOperationCommand) WeightGrams() int {
	return c.weightGrams
}

// Service returns the requested service level.
func (c RegisterPostalOperationCommand) Service() string {
	return c.service
}

// Destination returns the destination zone.
func (c RegisterPostalOperationCommand) Destination() string {
	return c.destination
}

// OperatorID returns the identifier of the counter operator.
func (c RegisterPostalOperationCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c *RegisterPostalOperationCommand) setWeightGrams(weightGrams int) error {
	if weightGrams <= 0 || weightGrams > services.MaxWeightGrams {
		return errs.NewValueIsOutOfRangeError("weightGrams", weightGrams, 1, services.MaxWeightGrams)
	}

	c.weightGrams = weightGrams
	return nil
}

func (c *RegisterPostalOperationCommand) setService(service string) error {
	switch service {
	case services.ServiceStandard, services.ServiceExpress, services.ServiceRegistered:
		c.service = service
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("service", fmt.Errorf("%q is not a known service level", service))
	}
}

func (c *RegisterPostalOperationCommand) setDestination(destination string) error {
	switch destination {
	case services.ZoneDomestic, services.ZoneEU, services.ZoneInternational:
		c.destination = destination
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("destination", fmt.Errorf("%q is not a known zone", destination))
	}
}

func (c *RegisterPostalOperationCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	c.operatorID = operatorID
	return nil
}
