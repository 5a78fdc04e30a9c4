package finance

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
)

// IsValid returns true if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

// Payment is an immutable record of money received or paid out. Payments
// are only ever appended; a mistaken payment is corrected by recording a
// compensating one, never by editing history. A payment references an
// order, a counterparty, or both (an on-account payment has no order).
type Payment struct {
	shared.BaseEntity
	OrderID        *uuid.UUID      `gorm:"type:uuid;index"`
	CounterpartyID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method         PaymentMethod   `gorm:"type:varchar(20);not null"`
	Reference      string          `gorm:"type:varchar(100)"`
	Notes          string          `gorm:"type:varchar(255)"`
	PaidAt         time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment record
func NewPayment(orderID, counterpartyID *uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidPayment, "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidPayment, "Unknown payment method")
	}
	if (orderID == nil || *orderID == uuid.Nil) && (counterpartyID == nil || *counterpartyID == uuid.Nil) {
		return nil, shared.NewDomainError(shared.CodeInvalidPayment, "Payment must reference an order or a counterparty")
	}

	return &Payment{
		BaseEntity:     shared.NewBaseEntity(),
		OrderID:        orderID,
		CounterpartyID: counterpartyID,
		Amount:         amount,
		Method:         method,
		Reference:      reference,
		PaidAt:         time.Now(),
	}, nil
}

// IsOnAccount returns true for payments not tied to a specific order
func (p *Payment) IsOnAccount() bool {
	return p.OrderID == nil
}
