package trade

import (
	"testing"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	line, err := NewOrderLine(uuid.New(), "SKU-001", "Widget", d("5"), d("100"))
	require.NoError(t, err)

	totals, err := ComputeTotals([]PricingLine{{Quantity: line.Quantity, UnitPrice: line.UnitPrice}},
		decimal.Zero, d("0.15"), d("20"))
	require.NoError(t, err)

	order, err := NewOrder("INV-MAIN-000001", OrderTypeSale, uuid.New(), uuid.New(), []OrderLine{line}, totals)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("should create completed order with totals", func(t *testing.T) {
		line, err := NewOrderLine(uuid.New(), "SKU-001", "Widget", d("5"), d("100"))
		require.NoError(t, err)
		totals, err := ComputeTotals([]PricingLine{{Quantity: d("5"), UnitPrice: d("100")}},
			decimal.Zero, d("0.15"), d("20"))
		require.NoError(t, err)

		order, err := NewOrder("INV-MAIN-000001", OrderTypeSale, uuid.New(), uuid.New(), []OrderLine{line}, totals)

		require.NoError(t, err)
		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.Equal(t, PaymentStatusUnpaid, order.PaymentStatus)
		assert.True(t, order.TotalAmount.Equal(d("595")))
		assert.True(t, order.DueAmount.Equal(d("595")))
		assert.True(t, order.PaidAmount.IsZero())
		require.Len(t, order.Lines, 1)
		assert.Equal(t, order.ID, order.Lines[0].OrderID)
		assert.True(t, order.Lines[0].LineTotal.Equal(d("500")))
	})

	t.Run("should emit order created event", func(t *testing.T) {
		line, _ := NewOrderLine(uuid.New(), "SKU-001", "Widget", d("1"), d("10"))
		totals, _ := ComputeTotals([]PricingLine{{Quantity: d("1"), UnitPrice: d("10")}},
			decimal.Zero, decimal.Zero, decimal.Zero)

		order, err := NewOrder("INV-MAIN-000002", OrderTypeSale, uuid.New(), uuid.New(), []OrderLine{line}, totals)

		require.NoError(t, err)
		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
	})

	t.Run("should reject empty document number", func(t *testing.T) {
		line, _ := NewOrderLine(uuid.New(), "SKU-001", "Widget", d("1"), d("10"))

		_, err := NewOrder("", OrderTypeSale, uuid.New(), uuid.New(), []OrderLine{line}, Totals{})

		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject order without lines", func(t *testing.T) {
		_, err := NewOrder("INV-MAIN-000003", OrderTypeSale, uuid.New(), uuid.New(), nil, Totals{})
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})

	t.Run("should reject unknown order type", func(t *testing.T) {
		line, _ := NewOrderLine(uuid.New(), "SKU-001", "Widget", d("1"), d("10"))

		_, err := NewOrder("INV-MAIN-000004", OrderType("RETURN"), uuid.New(), uuid.New(), []OrderLine{line}, Totals{})
		assert.Equal(t, shared.CodeInvalidOrder, shared.CodeOf(err))
	})
}

func TestOrder_ApplyPayment(t *testing.T) {
	t.Run("should move to partial then paid", func(t *testing.T) {
		order := newTestOrder(t) // total 595

		require.NoError(t, order.ApplyPayment(d("95"), false))
		assert.Equal(t, PaymentStatusPartial, order.PaymentStatus)
		assert.True(t, order.DueAmount.Equal(d("500")))

		require.NoError(t, order.ApplyPayment(d("500"), false))
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
		assert.True(t, order.DueAmount.IsZero())
		assert.True(t, order.IsFullyPaid())
	})

	t.Run("should reject overpayment by default", func(t *testing.T) {
		order := newTestOrder(t)

		err := order.ApplyPayment(d("600"), false)

		require.Error(t, err)
		assert.Equal(t, shared.CodeInvalidPayment, shared.CodeOf(err))
		assert.True(t, order.PaidAmount.IsZero())
	})

	t.Run("should clamp due at zero when overpayment allowed", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.ApplyPayment(d("600"), true))

		assert.True(t, order.DueAmount.IsZero())
		assert.True(t, order.PaidAmount.Equal(d("600")))
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	})

	t.Run("should reject non-positive amounts", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Error(t, order.ApplyPayment(decimal.Zero, false))
		assert.Error(t, order.ApplyPayment(d("-10"), false))
	})

	t.Run("should reject payment on cancelled order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Cancel("customer backed out"))

		err := order.ApplyPayment(d("10"), false)
		assert.Equal(t, shared.CodeInvalidPayment, shared.CodeOf(err))
	})

	t.Run("should emit payment applied event", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.ApplyPayment(d("100"), false))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentApplied, events[0].EventType())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel completed order", func(t *testing.T) {
		order := newTestOrder(t)

		err := order.Cancel("duplicate entry")

		require.NoError(t, err)
		assert.True(t, order.IsCancelled())
		assert.Equal(t, "duplicate entry", order.CancelReason)
		require.NotNil(t, order.CancelledAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCancelled, events[0].EventType())
	})

	t.Run("should reject double cancellation", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Cancel("first"))

		err := order.Cancel("second")
		assert.Error(t, err)
	})
}

func TestOrderType(t *testing.T) {
	t.Run("should map order type to document type", func(t *testing.T) {
		assert.Equal(t, "INV", OrderTypeSale.DocumentType().Prefix())
		assert.Equal(t, "PO", OrderTypePurchase.DocumentType().Prefix())
	})

	t.Run("should give stock direction by order type", func(t *testing.T) {
		sale := newTestOrder(t)
		assert.True(t, sale.StockDirection().Equal(d("-1")))

		sale.OrderType = OrderTypePurchase
		assert.True(t, sale.StockDirection().Equal(d("1")))
	})
}
