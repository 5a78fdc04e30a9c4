package inventory

import (
	"fmt"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInsufficientStock is the sentinel behind InsufficientStockError,
// so callers can match on the error code with errors.As/Is.
var ErrInsufficientStock = shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock available")

// InsufficientStockError reports a stock check failure, naming the
// offending product, the requested quantity and what was available.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested decimal.Decimal
	Available decimal.Decimal
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, requested, available decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %s, available %s",
		e.ProductID, e.Requested.String(), e.Available.String())
}

// Unwrap lets errors.As resolve the domain error code
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
