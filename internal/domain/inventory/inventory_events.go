package inventory

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the inventory context
const (
	EventTypeStockMoved          = "inventory.stock_moved"
	EventTypeStockBelowThreshold = "inventory.stock_below_threshold"
)

// StockMovedEvent is emitted for every applied stock delta
type StockMovedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID       `json:"product_id"`
	Delta          decimal.Decimal `json:"delta"`
	Reason         MovementReason  `json:"reason"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	DocumentNumber string          `json:"document_number"`
}

// NewStockMovedEvent creates a new StockMovedEvent
func NewStockMovedEvent(level *StockLevel, movement *StockMovement) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoved, "StockLevel", level.ID),
		ProductID:       movement.ProductID,
		Delta:           movement.Delta,
		Reason:          movement.Reason,
		ResultingStock:  movement.ResultingStock,
		DocumentNumber:  movement.DocumentNumber,
	}
}

// StockBelowThresholdEvent is emitted when a product's quantity drops
// below its reorder threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Threshold decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(level *StockLevel, threshold decimal.Decimal) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "StockLevel", level.ID),
		ProductID:       level.ProductID,
		Quantity:        level.Quantity,
		Threshold:       threshold,
	}
}
