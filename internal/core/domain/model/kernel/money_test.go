package kernel_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from units and cents", func(t *testing.T) {
		m, err := kernel.NewMoney(12, 50)

		require.NoError(t, err)
		assert.Equal(t, int64(1250), m.Cents())
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("should create zero money", func(t *testing.T) {
		m, err := kernel.NewMoney(0, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
		assert.False(t, m.IsNegative())
	})

	t.Run("should create negative money", func(t *testing.T) {
		m, err := kernel.NewMoney(-3, 25)

		require.NoError(t, err)
		assert.Equal(t, int64(-325), m.Cents())
		assert.True(t, m.IsNegative())
		assert.Equal(t, "-3.25", m.String())
	})

	t.Run("should reject cents out of range", func(t *testing.T) {
		_, err := kernel.NewMoney(1, 100)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewMoney(1, -1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestMoneyFromCents(t *testing.T) {
	t.Run("should restore money from cent amount", func(t *testing.T) {
		m := kernel.MoneyFromCents(999)

		assert.Equal(t, int64(999), m.Cents())
		assert.Equal(t, "9.99", m.String())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add and subtract", func(t *testing.T) {
		revenue := kernel.MoneyFromCents(2000)
		cost := kernel.MoneyFromCents(1250)

		margin := revenue.Sub(cost)
		assert.Equal(t, int64(750), margin.Cents())

		total := cost.Add(margin)
		assert.True(t, total.IsEqual(revenue))
	})

	t.Run("subtraction may go negative", func(t *testing.T) {
		small := kernel.MoneyFromCents(100)
		big := kernel.MoneyFromCents(300)

		diff := small.Sub(big)
		assert.True(t, diff.IsNegative())
		assert.Equal(t, "-2.00", diff.String())
	})
}

func TestMoney_Cmp(t *testing.T) {
	low := kernel.MoneyFromCents(1000)
	high := kernel.MoneyFromCents(1200)

	assert.Equal(t, -1, low.Cmp(high))
	assert.Equal(t, 1, high.Cmp(low))
	assert.Equal(t, 0, low.Cmp(kernel.MoneyFromCents(1000)))
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"whole units", 500, "5.00"},
		{"with cents", 1234, "12.34"},
		{"cents only", 7, "0.07"},
		{"zero", 0, "0.00"},
		{"negative below one unit", -99, "-0.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kernel.MoneyFromCents(tt.cents).String())
		})
	}
}
