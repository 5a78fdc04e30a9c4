package finance

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records a payment against an order, a counterparty
// account, or both
type RecordPaymentRequest struct {
	OrderID        *uuid.UUID      `json:"order_id"`
	CounterpartyID *uuid.UUID      `json:"counterparty_id"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Method         string          `json:"method" binding:"required,oneof=CASH CARD TRANSFER CHECK"`
	Reference      string          `json:"reference" binding:"max=100"`
}

// PaymentResponse is the API representation of a recorded payment
type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        *uuid.UUID      `json:"order_id,omitempty"`
	CounterpartyID *uuid.UUID      `json:"counterparty_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Reference      string          `json:"reference,omitempty"`
	PaidAt         time.Time       `json:"paid_at"`

	// Order payment state after allocation, absent for on-account payments
	OrderPaymentStatus string           `json:"order_payment_status,omitempty"`
	OrderDueAmount     *decimal.Decimal `json:"order_due_amount,omitempty"`
}

// ToPaymentResponse converts a Payment to its response form. order may be
// nil for on-account payments.
func ToPaymentResponse(payment *finance.Payment, order *trade.Order) PaymentResponse {
	response := PaymentResponse{
		ID:             payment.ID,
		OrderID:        payment.OrderID,
		CounterpartyID: payment.CounterpartyID,
		Amount:         payment.Amount,
		Method:         string(payment.Method),
		Reference:      payment.Reference,
		PaidAt:         payment.PaidAt,
	}
	if order != nil {
		response.OrderPaymentStatus = string(order.PaymentStatus)
		due := order.DueAmount
		response.OrderDueAmount = &due
	}
	return response
}
