package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetPostalOperationsQueryIsNotConstructed = errors.New(
	"GetPostalOperationsQuery must be created via NewGetPostalOperationsQuery constructor",
)

// GetPostalOperationsQuery lists the postal operation log, newest first.
// Reversed operations stay in the listing with their flag set: the log is the
// audit trail and never shrinks.
type GetPostalOperationsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPostalOperationsQuery creates a query listing the postal operation log.
func NewGetPostalOperationsQuery() GetPostalOperationsQuery {
	return GetPostalOperationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPostalOperationsQuery) Validate() error {
	return q.guard.Validate(ErrGetPostalOperationsQueryIsNotConstructed)
}

// GetPostalOperationsQueryResponse is one operation log entry.
type GetPostalOperationsQueryResponse struct {
	Code        string
	WeightGrams int
	Service     string
	Destination string
	Cost        kernel.Money
	Revenue     kernel.Money
	Margin      kernel.Money
	OperatorID  kernel.UUID
	IsReversed  bool
	CreatedAt   time.Time
}
