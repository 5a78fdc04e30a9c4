package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyUSD(decimal.NewFromInt(100))
		b := NewMoneyUSD(decimal.NewFromInt(50))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		a := NewMoneyUSD(decimal.NewFromInt(100))
		b, _ := NewMoney(decimal.NewFromInt(50), EUR)

		_, err := a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoney_Subtract(t *testing.T) {
	a := NewMoneyUSD(decimal.NewFromInt(100))
	b := NewMoneyUSD(decimal.NewFromInt(30))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70)))
}

func TestMoney_Multiply(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(99.99))
	result := m.Multiply(decimal.NewFromInt(3))
	assert.True(t, result.Amount().Equal(decimal.NewFromFloat(299.97)))
}

func TestMoney_Comparisons(t *testing.T) {
	small := NewMoneyUSD(decimal.NewFromInt(10))
	large := NewMoneyUSD(decimal.NewFromInt(20))

	lt, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, small.Equals(NewMoneyUSD(decimal.NewFromInt(10))))
	assert.False(t, small.Equals(large))
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(1)).IsPositive())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(5)).Negate().IsNegative())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyUSD(decimal.NewFromFloat(123.45))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scans string value", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.50"))
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(42.5)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
