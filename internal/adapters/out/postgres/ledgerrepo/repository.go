package ledgerrepo

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"
	"shipping/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// GormLedgerRepository implements ports.LedgerRepository using GORM.
//
// The balance mutations are single conditional UPDATE statements, not
// read-modify-write sequences: the database is the arbiter of whether a debit
// is covered, so concurrent debits cannot interleave past the check.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository.
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// GetBalance retrieves the cash balance row of an operating entity.
func (r *GormLedgerRepository) GetBalance(ctx context.Context, owner string) (*ledger.CashBalance, error) {
	if owner == "" {
		return nil, errs.NewValueIsRequiredError("owner")
	}

	var dto CashBalanceDTO
	if err := r.db.WithContext(ctx).First(&dto, "owner = ?", owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cash balance", owner)
		}
		return nil, err
	}

	return balanceToDomain(dto)
}

// DebitBalance decrements the balance by cost, conditional on the balance
// covering it. The condition lives in the WHERE clause, so the decrement is
// atomic: zero rows affected means the funds were not there at the moment the
// statement ran, and nothing was changed.
func (r *GormLedgerRepository) DebitBalance(ctx context.Context, owner string, cost kernel.Money) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidError("cost must not be negative")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE cash_balances
		SET amount_cents = amount_cents - ?, last_updated = ?
		WHERE owner = ? AND amount_cents >= ?
	`, cost.Cents(), time.Now().UTC(), owner, cost.Cents())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing balance row from one that cannot cover the cost.
		var count int64
		if err := r.db.WithContext(ctx).Model(&CashBalanceDTO{}).
			Where("owner = ?", owner).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("cash balance", owner)
		}
		return ledger.ErrInsufficientFunds
	}

	return nil
}

// CreditBalance increments the balance. Used by reversals and float top-ups.
func (r *GormLedgerRepository) CreditBalance(ctx context.Context, owner string, amount kernel.Money) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidError("amount must not be negative")
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE cash_balances
		SET amount_cents = amount_cents + ?, last_updated = ?
		WHERE owner = ?
	`, amount.Cents(), time.Now().UTC(), owner)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cash balance", owner)
	}

	return nil
}

// AddOperation appends a postal operation log entry.
// A duplicate code fails with a validation error instead of a bare driver error.
func (r *GormLedgerRepository) AddOperation(ctx context.Context, entry *ledger.OperationLog) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := operationFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("operation code already exists", err)
		}
		return err
	}

	return nil
}

// GetOperation retrieves a log entry by its operation code.
func (r *GormLedgerRepository) GetOperation(ctx context.Context, code string) (*ledger.OperationLog, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto PostalOperationDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("postal operation", code)
		}
		return nil, err
	}

	return operationToDomain(dto)
}

// MarkOperationReversed sets the reversal flag on a log entry, conditional on
// the flag not being set yet. The condition lives in the WHERE clause, so the
// flip is atomic: of two concurrent reversals of the same code, exactly one
// matches the row and the other gets ledger.ErrOperationAlreadyReversed.
func (r *GormLedgerRepository) MarkOperationReversed(ctx context.Context, code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	result := r.db.WithContext(ctx).Model(&PostalOperationDTO{}).
		Where("code = ? AND is_reversed = ?", code, false).
		Update("is_reversed", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing entry from one already reversed.
		var count int64
		if err := r.db.WithContext(ctx).Model(&PostalOperationDTO{}).
			Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("postal operation", code)
		}
		return ledger.ErrOperationAlreadyReversed
	}

	return nil
}
