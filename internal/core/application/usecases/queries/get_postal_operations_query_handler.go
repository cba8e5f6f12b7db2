package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPostalOperationsQueryHandler lists the postal operation log from the database.
type GetPostalOperationsQueryHandler struct {
	db *gorm.DB
}

// NewGetPostalOperationsQueryHandler creates a handler for operation log queries.
func NewGetPostalOperationsQueryHandler(db *gorm.DB) GetPostalOperationsQueryHandler {
	return GetPostalOperationsQueryHandler{db: db}
}

// Handle executes the listing query.
// Entries are ordered newest first; reversed entries are included.
func (h GetPostalOperationsQueryHandler) Handle(
	ctx context.Context,
	query GetPostalOperationsQuery,
) ([]GetPostalOperationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	operations := make([]GetPostalOperationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			code,
			weight_grams,
			service,
			destination,
			cost_cents,
			revenue_cents,
			margin_cents,
			operator_id,
			is_reversed,
			created_at
		FROM postal_operations
		ORDER BY created_at DESC, code
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			op           GetPostalOperationsQueryResponse
			costCents    int64
			revenueCents int64
			marginCents  int64
			operatorID   uuid.UUID
			createdAt    time.Time
		)

		err = rows.Scan(
			&op.Code,
			&op.WeightGrams,
			&op.Service,
			&op.Destination,
			&costCents,
			&revenueCents,
			&marginCents,
			&operatorID,
			&op.IsReversed,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		opOperatorID, idErr := kernel.UUIDFromBytes(operatorID[:])
		if idErr != nil {
			return nil, idErr
		}

		op.Cost = kernel.MoneyFromCents(costCents)
		op.Revenue = kernel.MoneyFromCents(revenueCents)
		op.Margin = kernel.MoneyFromCents(marginCents)
		op.OperatorID = opOperatorID
		op.CreatedAt = createdAt
		operations = append(operations, op)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return operations, nil
}
