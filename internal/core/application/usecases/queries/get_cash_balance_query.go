package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetCashBalanceQueryIsNotConstructed = errors.New(
	"GetCashBalanceQuery must be created via NewGetCashBalanceQuery constructor",
)

// GetCashBalanceQuery retrieves the current cash balance of an operating entity.
type GetCashBalanceQuery struct {
	owner string

	guard guard.ConstructorGuard
}

// NewGetCashBalanceQuery creates a query to retrieve the balance of owner.
func NewGetCashBalanceQuery(owner string) (GetCashBalanceQuery, error) {
	if owner == "" {
		return GetCashBalanceQuery{}, errs.NewValueIsRequiredError("owner")
	}

	return GetCashBalanceQuery{
		owner: owner,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCashBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetCashBalanceQueryIsNotConstructed)
}

// Owner returns the operating entity whose balance is queried.
func (q GetCashBalanceQuery) Owner() string {
	return q.owner
}

// GetCashBalanceQueryResponse is the balance projection.
type GetCashBalanceQueryResponse struct {
	Owner       string
	Amount      kernel.Money
	LastUpdated time.Time
}
