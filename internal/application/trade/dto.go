package trade

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one product position on an incoming order.
// UnitPrice overrides the catalog price when set; otherwise sales use the
// product's sell price and purchases its cost.
type OrderLineRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// InitialPaymentRequest is an optional payment taken at order time
type InitialPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=CASH CARD TRANSFER CHECK"`
	Reference string          `json:"reference" binding:"max=100"`
}

// CreateOrderRequest creates a complete order in one transaction
type CreateOrderRequest struct {
	OrderType      string                 `json:"order_type" binding:"required,oneof=SALE PURCHASE"`
	CounterpartyID uuid.UUID              `json:"counterparty_id" binding:"required"`
	BranchID       uuid.UUID              `json:"branch_id" binding:"required"`
	Lines          []OrderLineRequest     `json:"lines" binding:"required,min=1,dive"`
	Discount       decimal.Decimal        `json:"discount"`
	Shipping       decimal.Decimal        `json:"shipping"`
	Payment        *InitialPaymentRequest `json:"payment"`
	Notes          string                 `json:"notes" binding:"max=500"`
}

// PreviewOrderRequest prices an order without committing anything
type PreviewOrderRequest struct {
	OrderType string             `json:"order_type" binding:"required,oneof=SALE PURCHASE"`
	Lines     []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	Discount  decimal.Decimal    `json:"discount"`
	Shipping  decimal.Decimal    `json:"shipping"`
}

// TotalsResponse is the priced breakdown of an order
type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ToTotalsResponse converts domain totals to their response form
func ToTotalsResponse(totals trade.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Tax:      totals.Tax,
		Shipping: totals.Shipping,
		Total:    totals.Total,
	}
}

// OrderLineResponse is the API representation of an order line
type OrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	DocumentNumber string              `json:"document_number"`
	OrderType      string              `json:"order_type"`
	CounterpartyID uuid.UUID           `json:"counterparty_id"`
	BranchID       uuid.UUID           `json:"branch_id"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"discount"`
	Tax            decimal.Decimal     `json:"tax"`
	Shipping       decimal.Decimal     `json:"shipping"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	PaidAmount     decimal.Decimal     `json:"paid_amount"`
	DueAmount      decimal.Decimal     `json:"due_amount"`
	Notes          string              `json:"notes,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	Lines          []OrderLineResponse `json:"lines"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToOrderResponse converts an Order to its response form
func ToOrderResponse(order *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductCode: line.ProductCode,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	return OrderResponse{
		ID:             order.ID,
		DocumentNumber: order.DocumentNumber,
		OrderType:      string(order.OrderType),
		CounterpartyID: order.CounterpartyID,
		BranchID:       order.BranchID,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		Tax:            order.Tax,
		Shipping:       order.Shipping,
		TotalAmount:    order.TotalAmount,
		PaidAmount:     order.PaidAmount,
		DueAmount:      order.DueAmount,
		Notes:          order.Notes,
		CancelReason:   order.CancelReason,
		CancelledAt:    order.CancelledAt,
		Lines:          lines,
		CreatedAt:      order.CreatedAt,
	}
}

// CancelOrderRequest cancels a committed order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}
