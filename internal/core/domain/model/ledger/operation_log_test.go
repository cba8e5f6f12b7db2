package ledger_test

import (
	"strings"
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/ledger"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOperationLog(t *testing.T) *ledger.OperationLog {
	t.Helper()

	entry, err := ledger.NewOperationLog(
		ledger.NewOperationCode(),
		500,
		"registered",
		"domestic",
		kernel.MoneyFromCents(750),
		kernel.MoneyFromCents(1200),
		kernel.NewUUID(),
	)
	require.NoError(t, err)
	return entry
}

func TestNewOperationCode(t *testing.T) {
	code1 := ledger.NewOperationCode()
	code2 := ledger.NewOperationCode()

	assert.True(t, strings.HasPrefix(code1, "PO-"))
	assert.NotEqual(t, code1, code2)
}

func TestNewOperationLog(t *testing.T) {
	t.Run("computes margin from revenue and cost", func(t *testing.T) {
		entry := validOperationLog(t)

		assert.Equal(t, int64(750), entry.Cost().Cents())
		assert.Equal(t, int64(1200), entry.Revenue().Cents())
		assert.Equal(t, int64(450), entry.Margin().Cents())
		assert.False(t, entry.IsReversed())
		assert.False(t, entry.CreatedAt().IsZero())
		require.NoError(t, entry.Validate())
	})

	t.Run("rejects missing code", func(t *testing.T) {
		_, err := ledger.NewOperationLog("", 500, "registered", "domestic",
			kernel.MoneyFromCents(1), kernel.MoneyFromCents(2), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		_, err := ledger.NewOperationLog("PO-1", 0, "registered", "domestic",
			kernel.MoneyFromCents(1), kernel.MoneyFromCents(2), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := ledger.NewOperationLog("PO-1", 500, "registered", "domestic",
			kernel.MoneyFromCents(-1), kernel.MoneyFromCents(2), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects zero-value operator id", func(t *testing.T) {
		var operatorID kernel.UUID

		_, err := ledger.NewOperationLog("PO-1", 500, "registered", "domestic",
			kernel.MoneyFromCents(1), kernel.MoneyFromCents(2), operatorID)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestOperationLog_MarkReversed(t *testing.T) {
	t.Run("sets the reversal flag once", func(t *testing.T) {
		entry := validOperationLog(t)

		require.NoError(t, entry.MarkReversed())
		assert.True(t, entry.IsReversed())
	})

	t.Run("second reversal fails", func(t *testing.T) {
		entry := validOperationLog(t)
		require.NoError(t, entry.MarkReversed())

		require.ErrorIs(t, entry.MarkReversed(), ledger.ErrOperationAlreadyReversed)
		assert.True(t, entry.IsReversed())
	})
}

func TestRestoreOperationLog(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	operatorID := kernel.NewUUID()

	entry, err := ledger.RestoreOperationLog("PO-42", 250, "express", "eu",
		kernel.MoneyFromCents(500), kernel.MoneyFromCents(800), operatorID, true, createdAt)

	require.NoError(t, err)
	assert.Equal(t, "PO-42", entry.Code())
	assert.Equal(t, 250, entry.WeightGrams())
	assert.Equal(t, "express", entry.Service())
	assert.Equal(t, "eu", entry.Destination())
	assert.True(t, entry.IsReversed())
	assert.Equal(t, createdAt, entry.CreatedAt())
	assert.True(t, entry.OperatorID().IsEqual(operatorID))
	assert.Equal(t, int64(300), entry.Margin().Cents())
}

func TestOperationLog_Validate(t *testing.T) {
	var entry ledger.OperationLog

	require.ErrorIs(t, entry.Validate(), ledger.ErrOperationLogIsNotConstructed)
}
