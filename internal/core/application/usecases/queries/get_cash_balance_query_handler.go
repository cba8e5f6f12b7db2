package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCashBalanceQueryHandler reads the cash balance projection from the database.
type GetCashBalanceQueryHandler struct {
	db *gorm.DB
}

// NewGetCashBalanceQueryHandler creates a handler for balance queries.
func NewGetCashBalanceQueryHandler(db *gorm.DB) GetCashBalanceQueryHandler {
	return GetCashBalanceQueryHandler{db: db}
}

// Handle executes the balance query.
// Returns an errs.ErrObjectNotFound based error when the owner has no balance row.
func (h GetCashBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetCashBalanceQuery,
) (GetCashBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCashBalanceQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			owner,
			amount_cents,
			last_updated
		FROM cash_balances
		WHERE owner = ?
	`, query.Owner()).Row()

	var (
		owner       string
		amountCents int64
		lastUpdated time.Time
	)

	err := row.Scan(&owner, &amountCents, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCashBalanceQueryResponse{}, errs.NewObjectNotFoundError("owner", query.Owner())
	}
	if err != nil {
		return GetCashBalanceQueryResponse{}, err
	}

	return GetCashBalanceQueryResponse{
		Owner:       owner,
		Amount:      kernel.MoneyFromCents(amountCents),
		LastUpdated: lastUpdated,
	}, nil
}
