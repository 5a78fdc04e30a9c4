package finance

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRepository defines persistence operations for the append-only
// payment trail. There is deliberately no update or delete.
type PaymentRepository interface {
	// Append inserts a payment record
	Append(ctx context.Context, payment *Payment) error

	// FindByID returns a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByOrder returns all payments recorded against an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Payment, error)

	// FindByCounterparty returns payments for a counterparty
	FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]Payment, error)

	// SumByOrder returns the total amount paid against an order
	SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}
