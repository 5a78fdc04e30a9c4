package trade

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// FindByID returns an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate returns an order under a row-level lock, for
	// payment allocation and cancellation
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByDocumentNumber returns an order by its document number
	FindByDocumentNumber(ctx context.Context, documentNumber string) (*Order, error)

	// FindAll returns orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Create inserts the order header and its lines. A unique-constraint
	// violation on the document number must surface as
	// shared.ErrDuplicateDocumentNumber.
	Create(ctx context.Context, order *Order) error

	// Save persists header changes with optimistic version checking
	Save(ctx context.Context, order *Order) error
}
