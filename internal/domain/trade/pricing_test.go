package trade

import (
	"testing"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals(t *testing.T) {
	t.Run("should compute totals with tax and shipping", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("5"), UnitPrice: d("100")},
		}

		totals, err := ComputeTotals(lines, decimal.Zero, d("0.15"), d("20"))

		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(d("500")))
		assert.True(t, totals.Tax.Equal(d("75")))
		assert.True(t, totals.Shipping.Equal(d("20")))
		assert.True(t, totals.Total.Equal(d("595")))
	})

	t.Run("should apply discount before tax", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("2"), UnitPrice: d("250")},
		}

		totals, err := ComputeTotals(lines, d("100"), d("0.10"), decimal.Zero)

		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(d("500")))
		assert.True(t, totals.Discount.Equal(d("100")))
		// tax on the discounted 400, not the 500 subtotal
		assert.True(t, totals.Tax.Equal(d("40")))
		assert.True(t, totals.Total.Equal(d("440")))
	})

	t.Run("should not tax shipping", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("1"), UnitPrice: d("100")},
		}

		totals, err := ComputeTotals(lines, decimal.Zero, d("0.20"), d("50"))

		require.NoError(t, err)
		assert.True(t, totals.Tax.Equal(d("20")))
		assert.True(t, totals.Total.Equal(d("170")))
	})

	t.Run("should round tax to two decimal places", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("3"), UnitPrice: d("33.33")},
		}

		totals, err := ComputeTotals(lines, decimal.Zero, d("0.0825"), decimal.Zero)

		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(d("99.99")))
		// 99.99 * 0.0825 = 8.249175 -> 8.25
		assert.True(t, totals.Tax.Equal(d("8.25")))
		assert.True(t, totals.Total.Equal(d("108.24")))
	})

	t.Run("should sum multiple lines", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("2"), UnitPrice: d("10.50")},
			{Quantity: d("1"), UnitPrice: d("99")},
			{Quantity: d("0.5"), UnitPrice: d("7")},
		}

		totals, err := ComputeTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)

		require.NoError(t, err)
		assert.True(t, totals.Subtotal.Equal(d("123.50")))
		assert.True(t, totals.Total.Equal(d("123.50")))
	})

	t.Run("should allow zero-priced lines", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("1"), UnitPrice: d("100")},
			{Quantity: d("1"), UnitPrice: decimal.Zero}, // free item
		}

		totals, err := ComputeTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)

		require.NoError(t, err)
		assert.True(t, totals.Total.Equal(d("100")))
	})

	t.Run("should allow discount equal to subtotal", func(t *testing.T) {
		lines := []PricingLine{
			{Quantity: d("1"), UnitPrice: d("100")},
		}

		totals, err := ComputeTotals(lines, d("100"), d("0.15"), decimal.Zero)

		require.NoError(t, err)
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := ComputeTotals(nil, decimal.Zero, decimal.Zero, decimal.Zero)

		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		lines := []PricingLine{{Quantity: decimal.Zero, UnitPrice: d("10")}}

		_, err := ComputeTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		lines := []PricingLine{{Quantity: d("-1"), UnitPrice: d("10")}}

		_, err := ComputeTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject negative unit price", func(t *testing.T) {
		lines := []PricingLine{{Quantity: d("1"), UnitPrice: d("-10")}}

		_, err := ComputeTotals(lines, decimal.Zero, decimal.Zero, decimal.Zero)
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject discount above subtotal", func(t *testing.T) {
		lines := []PricingLine{{Quantity: d("1"), UnitPrice: d("50")}}

		_, err := ComputeTotals(lines, d("51"), decimal.Zero, decimal.Zero)
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject negative discount tax rate and shipping", func(t *testing.T) {
		lines := []PricingLine{{Quantity: d("1"), UnitPrice: d("50")}}

		_, err := ComputeTotals(lines, d("-1"), decimal.Zero, decimal.Zero)
		assert.Error(t, err)

		_, err = ComputeTotals(lines, decimal.Zero, d("-0.1"), decimal.Zero)
		assert.Error(t, err)

		_, err = ComputeTotals(lines, decimal.Zero, decimal.Zero, d("-5"))
		assert.Error(t, err)
	})
}
