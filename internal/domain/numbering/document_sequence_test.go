package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentType_Prefix(t *testing.T) {
	assert.Equal(t, "INV", DocumentTypeInvoice.Prefix())
	assert.Equal(t, "PO", DocumentTypePurchaseOrder.Prefix())
	assert.Equal(t, "ADJ", DocumentTypeAdjustment.Prefix())
}

func TestDocumentType_IsValid(t *testing.T) {
	assert.True(t, DocumentTypeInvoice.IsValid())
	assert.True(t, DocumentTypePurchaseOrder.IsValid())
	assert.True(t, DocumentTypeAdjustment.IsValid())
	assert.False(t, DocumentType("RECEIPT").IsValid())
}

func TestFormat(t *testing.T) {
	t.Run("formats number with zero padding", func(t *testing.T) {
		n, err := Format(DocumentTypeInvoice, "MAIN", 42)
		require.NoError(t, err)
		assert.Equal(t, "INV-MAIN-000042", n)
	})

	t.Run("keeps full width for large sequences", func(t *testing.T) {
		n, err := Format(DocumentTypePurchaseOrder, "WEST", 1234567)
		require.NoError(t, err)
		assert.Equal(t, "PO-WEST-1234567", n)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := Format(DocumentType("RECEIPT"), "MAIN", 1)
		assert.Error(t, err)
	})

	t.Run("rejects empty branch code", func(t *testing.T) {
		_, err := Format(DocumentTypeInvoice, "", 1)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive sequence", func(t *testing.T) {
		_, err := Format(DocumentTypeInvoice, "MAIN", 0)
		assert.Error(t, err)
	})
}
