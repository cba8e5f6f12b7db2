// Package ledgerrepo provides data transfer objects and mapping functions for
// the postal cash ledger: the per-office cash balance row and the append-only
// postal operation log.
package ledgerrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// CashBalanceDTO represents the database structure for the office cash float.
// One row per operating entity; the amount is stored in cents.
type CashBalanceDTO struct {
	Owner       string `gorm:"primaryKey"`
	AmountCents int64
	LastUpdated time.Time
}

// TableName specifies the database table name for cash balances.
func (CashBalanceDTO) TableName() string {
	return "cash_balances"
}

// PostalOperationDTO represents the database structure for the operation log.
// Rows are append-only; the reversal flag is the only column ever updated.
type PostalOperationDTO struct {
	Code         string `gorm:"primaryKey"`
	WeightGrams  int
	Service      string
	Destination  string
	CostCents    int64
	RevenueCents int64
	MarginCents  int64
	OperatorID   uuid.UUID `gorm:"type:uuid"`
	IsReversed   bool
	CreatedAt    time.Time `gorm:"index"`
}

// TableName specifies the database table name for postal operations.
func (PostalOperationDTO) TableName() string {
	return "postal_operations"
}

func balanceToDomain(dto CashBalanceDTO) (*ledger.CashBalance, error) {
	return ledger.RestoreCashBalance(dto.Owner, kernel.MoneyFromCents(dto.AmountCents), dto.LastUpdated)
}

func operationFromDomain(entry *ledger.OperationLog) PostalOperationDTO {
	return PostalOperationDTO{
		Code:         entry.Code(),
		WeightGrams:  entry.WeightGrams(),
		Service:      entry.Service(),
		Destination:  entry.Destination(),
		CostCents:    entry.Cost().Cents(),
		RevenueCents: entry.Revenue().Cents(),
		MarginCents:  entry.Margin().Cents(),
		OperatorID:   entry.OperatorID().Bytes(),
		IsReversed:   entry.IsReversed(),
		CreatedAt:    entry.CreatedAt(),
	}
}

func operationToDomain(dto PostalOperationDTO) (*ledger.OperationLog, error) {
	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreOperationLog(
		dto.Code,
		dto.WeightGrams,
		dto.Service,
		dto.Destination,
		kernel.MoneyFromCents(dto.CostCents),
		kernel.MoneyFromCents(dto.RevenueCents),
		operatorID,
		dto.IsReversed,
		dto.CreatedAt,
	)
}
