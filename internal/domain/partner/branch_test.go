package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBranch(t *testing.T) {
	t.Run("creates branch", func(t *testing.T) {
		b, err := NewBranch("MAIN", "Main Street Store")
		require.NoError(t, err)
		assert.Equal(t, "MAIN", b.Code)
		assert.True(t, b.Active)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewBranch("", "Main Street Store")
		assert.Error(t, err)
	})

	t.Run("rejects overlong code", func(t *testing.T) {
		_, err := NewBranch(strings.Repeat("X", 21), "Main Street Store")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBranch("MAIN", "")
		assert.Error(t, err)
	})
}

func TestNewCustomerAndSupplier(t *testing.T) {
	c, err := NewCustomer("Acme Retail")
	require.NoError(t, err)
	assert.True(t, c.Active)

	_, err = NewCustomer("")
	assert.Error(t, err)

	s, err := NewSupplier("Global Wholesale")
	require.NoError(t, err)
	assert.True(t, s.Active)

	_, err = NewSupplier("")
	assert.Error(t, err)
}
