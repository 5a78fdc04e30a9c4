package inventory

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLevel tracks the on-hand quantity for a single product.
// It is the aggregate root for all stock mutations: every change goes
// through Apply or AdjustTo and produces an immutable StockMovement.
// Quantity never goes below zero.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates an empty stock record for a product
func NewStockLevel(productID uuid.UUID) (*StockLevel, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          decimal.Zero,
	}, nil
}

// Apply applies a signed quantity delta and returns the audit movement.
// A delta that would drive the quantity negative fails with
// InsufficientStockError and leaves the level untouched.
func (l *StockLevel) Apply(delta decimal.Decimal, reason MovementReason, documentNumber string) (*StockMovement, error) {
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_DELTA", "Stock delta cannot be zero")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown stock movement reason")
	}

	newQuantity := l.Quantity.Add(delta)
	if newQuantity.IsNegative() {
		return nil, NewInsufficientStockError(l.ProductID, delta.Neg(), l.Quantity)
	}

	l.Quantity = newQuantity
	l.Touch()
	l.IncrementVersion()

	movement, err := NewStockMovement(l.ProductID, delta, reason, newQuantity, documentNumber)
	if err != nil {
		return nil, err
	}

	l.AddDomainEvent(NewStockMovedEvent(l, movement))

	return movement, nil
}

// AdjustTo sets the quantity to an absolute target (stock taking / manual
// correction), computing the delta internally. Returns nil when the target
// equals the current quantity.
func (l *StockLevel) AdjustTo(target decimal.Decimal, documentNumber, notes string) (*StockMovement, error) {
	if target.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}

	delta := target.Sub(l.Quantity)
	if delta.IsZero() {
		return nil, nil
	}

	movement, err := l.Apply(delta, MovementReasonAdjustment, documentNumber)
	if err != nil {
		return nil, err
	}
	movement.Notes = notes
	return movement, nil
}

// CanFulfill returns true if the on-hand quantity covers the requested amount
func (l *StockLevel) CanFulfill(quantity decimal.Decimal) bool {
	return l.Quantity.GreaterThanOrEqual(quantity)
}

// IsBelowThreshold returns true if the quantity has dropped below the
// given reorder threshold (a zero threshold disables the check)
func (l *StockLevel) IsBelowThreshold(threshold decimal.Decimal) bool {
	return threshold.GreaterThan(decimal.Zero) && l.Quantity.LessThan(threshold)
}
