package inventory

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRepository defines persistence operations for stock levels and
// their append-only movement trail.
type StockRepository interface {
	// FindByProduct returns the stock level for a product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*StockLevel, error)

	// FindByProductForUpdate returns the stock level under a row-level lock.
	// Concurrent callers for the same product serialize here; that is the
	// mechanism preventing two orders from both passing a stale stock check.
	FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*StockLevel, error)

	// Create inserts a new stock level row
	Create(ctx context.Context, level *StockLevel) error

	// Save persists quantity changes with optimistic version checking
	Save(ctx context.Context, level *StockLevel) error

	// AppendMovement appends an audit record. Movements are never updated
	// or deleted.
	AppendMovement(ctx context.Context, movement *StockMovement) error

	// FindMovementsByProduct returns the movement history for a product
	FindMovementsByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// CountMovementsByProduct returns the movement count for a product
	CountMovementsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
