package commands

import (
	"errors"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrReversePostalOperationCommandIsNotConstructed = errors.New(
	"ReversePostalOperationCommand must be created via NewReversePostalOperationCommand constructor",
)

// ReversePostalOperationCommand represents a supervisor voiding a registered
// postal operation, for example a mis-keyed weight or a customer walking away
// before payment. Reversal credits the operation's cost back to the balance
// and flags the log entry; the entry itself is never deleted.
type ReversePostalOperationCommand struct {
	code string

	guard guard.ConstructorGuard
}

// NewReversePostalOperationCommand creates a command to reverse a postal operation.
func NewReversePostalOperationCommand(code string) (ReversePostalOperationCommand, error) {
	if code == "" {
		return ReversePostalOperationCommand{}, errs.NewValueIsRequiredError("code")
	}

	return ReversePostalOperationCommand{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReversePostalOperationCommand) Validate() error {
	return c.guard.Validate(ErrReversePostalOperationCommandIsNotConstructed)
}

// Code returns the operation code to reverse.
func (c ReversePostalOperationCommand) Code() string {
	return c.code
}
