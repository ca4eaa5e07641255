package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestZero(t *testing.T) {
	assert.True(t, kernel.Zero().IsZero())
	assert.Equal(t, "$0.00", kernel.Zero().String())

	t.Run("zero_is_additive_identity", func(t *testing.T) {
		m := mustMoney(t, "12.34")
		assert.True(t, m.Add(kernel.Zero()).IsEqual(m))
		assert.True(t, kernel.Zero().Add(m).IsEqual(m))
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid_decimal", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("19.99")
		require.NoError(t, err)
		assert.Equal(t, "$19.99", m.String())
	})

	t.Run("negative_decimal_is_representable", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("-3.50")
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})

	t.Run("garbage_is_rejected", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("nineteen dollars")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add_and_sub", func(t *testing.T) {
		a := mustMoney(t, "10.00")
		b := mustMoney(t, "5.25")

		assert.Equal(t, "$15.25", a.Add(b).String())
		assert.Equal(t, "$4.75", a.Sub(b).String())
	})

	t.Run("operations_return_new_values", func(t *testing.T) {
		a := mustMoney(t, "10.00")
		_ = a.Add(mustMoney(t, "1.00"))

		assert.Equal(t, "$10.00", a.String())
	})

	t.Run("mul_int_scales_exactly", func(t *testing.T) {
		price := mustMoney(t, "0.10")

		// 0.10 * 3 must be exactly 0.30, not a float approximation
		assert.True(t, price.MulInt(3).IsEqual(mustMoney(t, "0.30")))
	})

	t.Run("sub_below_zero_is_negative", func(t *testing.T) {
		a := mustMoney(t, "1.00")
		b := mustMoney(t, "2.00")

		assert.True(t, a.Sub(b).IsNegative())
	})
}

func TestMoneyIsEqual(t *testing.T) {
	t.Run("equality_by_numeric_value", func(t *testing.T) {
		a := mustMoney(t, "1.5")
		b := mustMoney(t, "1.50")

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different_amounts_differ", func(t *testing.T) {
		assert.False(t, mustMoney(t, "1.50").IsEqual(mustMoney(t, "1.51")))
	})
}

func TestNewMoneyFromDecimal(t *testing.T) {
	m := kernel.NewMoneyFromDecimal(decimal.RequireFromString("42.42"))

	assert.Equal(t, "$42.42", m.String())
	assert.True(t, m.Decimal().Equal(decimal.RequireFromString("42.42")))
}
