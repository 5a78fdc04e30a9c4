package trade

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the trade context
const (
	EventTypeOrderCreated   = "trade.order_created"
	EventTypeOrderCancelled = "trade.order_cancelled"
	EventTypePaymentApplied = "trade.order_payment_applied"
)

// OrderCreatedEvent is emitted when an order commits
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	DocumentNumber string          `json:"document_number"`
	OrderType      OrderType       `json:"order_type"`
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	BranchID       uuid.UUID       `json:"branch_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	LineCount      int             `json:"line_count"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID),
		DocumentNumber:  order.DocumentNumber,
		OrderType:       order.OrderType,
		CounterpartyID:  order.CounterpartyID,
		BranchID:        order.BranchID,
		TotalAmount:     order.TotalAmount,
		LineCount:       len(order.Lines),
	}
}

// OrderCancelledEvent is emitted when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	DocumentNumber string `json:"document_number"`
	Reason         string `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "Order", order.ID),
		DocumentNumber:  order.DocumentNumber,
		Reason:          reason,
	}
}

// OrderPaymentAppliedEvent is emitted when a payment is allocated to an order
type OrderPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	DocumentNumber string          `json:"document_number"`
	Amount         decimal.Decimal `json:"amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
}

// NewOrderPaymentAppliedEvent creates a new OrderPaymentAppliedEvent
func NewOrderPaymentAppliedEvent(order *Order, amount decimal.Decimal) *OrderPaymentAppliedEvent {
	return &OrderPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentApplied, "Order", order.ID),
		DocumentNumber:  order.DocumentNumber,
		Amount:          amount,
		PaidAmount:      order.PaidAmount,
		DueAmount:       order.DueAmount,
		PaymentStatus:   order.PaymentStatus,
	}
}
