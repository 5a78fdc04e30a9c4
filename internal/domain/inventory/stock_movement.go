package inventory

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementReason categorizes why stock changed
type MovementReason string

const (
	MovementReasonSale       MovementReason = "SALE"
	MovementReasonPurchase   MovementReason = "PURCHASE"
	MovementReasonAdjustment MovementReason = "ADJUSTMENT"
	MovementReasonTransfer   MovementReason = "TRANSFER"
)

// String returns the string representation of the reason
func (r MovementReason) String() string {
	return string(r)
}

// IsValid returns true if the reason is a known value
func (r MovementReason) IsValid() bool {
	switch r {
	case MovementReasonSale, MovementReasonPurchase, MovementReasonAdjustment, MovementReasonTransfer:
		return true
	}
	return false
}

// StockMovement is an immutable audit record of a single stock change.
// Movements are only ever appended; corrections happen through new
// offsetting movements. For any product, the sum of deltas equals the
// current quantity minus the initial quantity.
type StockMovement struct {
	shared.BaseEntity
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movements_product"`
	Delta          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         MovementReason  `gorm:"type:varchar(20);not null"`
	ResultingStock decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DocumentNumber string          `gorm:"type:varchar(50);not null;index:idx_stock_movements_document"`
	Notes          string          `gorm:"type:varchar(255)"`
	OccurredAt     time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(productID uuid.UUID, delta decimal.Decimal, reason MovementReason, resultingStock decimal.Decimal, documentNumber string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_DELTA", "Stock delta cannot be zero")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown stock movement reason")
	}
	if resultingStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Resulting stock cannot be negative")
	}
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Related document number is required")
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Delta:          delta,
		Reason:         reason,
		ResultingStock: resultingStock,
		DocumentNumber: documentNumber,
		OccurredAt:     time.Now(),
	}, nil
}

// IsInbound returns true if the movement increased stock
func (m *StockMovement) IsInbound() bool {
	return m.Delta.IsPositive()
}

// IsOutbound returns true if the movement decreased stock
func (m *StockMovement) IsOutbound() bool {
	return m.Delta.IsNegative()
}
