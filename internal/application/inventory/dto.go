package inventory

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustStockRequest sets a product's stock to an absolute quantity
type AdjustStockRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	BranchID       uuid.UUID       `json:"branch_id" binding:"required"`
	TargetQuantity decimal.Decimal `json:"target_quantity" binding:"required"`
	Notes          string          `json:"notes" binding:"max=255"`
}

// ApplyDeltaRequest applies a signed stock delta tied to a document
type ApplyDeltaRequest struct {
	ProductID      uuid.UUID                `json:"product_id" binding:"required"`
	Delta          decimal.Decimal          `json:"delta" binding:"required"`
	Reason         inventory.MovementReason `json:"reason" binding:"required"`
	DocumentNumber string                   `json:"document_number" binding:"required,max=50"`
}

// StockLevelResponse is the API representation of a stock level
type StockLevelResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToStockLevelResponse converts a StockLevel to its response form
func ToStockLevelResponse(level *inventory.StockLevel) StockLevelResponse {
	return StockLevelResponse{
		ProductID: level.ProductID,
		Quantity:  level.Quantity,
		UpdatedAt: level.UpdatedAt,
	}
}

// StockMovementResponse is the API representation of a stock movement
type StockMovementResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Delta          decimal.Decimal `json:"delta"`
	Reason         string          `json:"reason"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	DocumentNumber string          `json:"document_number"`
	Notes          string          `json:"notes,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// ToStockMovementResponse converts a StockMovement to its response form
func ToStockMovementResponse(m *inventory.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Delta:          m.Delta,
		Reason:         m.Reason.String(),
		ResultingStock: m.ResultingStock,
		DocumentNumber: m.DocumentNumber,
		Notes:          m.Notes,
		OccurredAt:     m.OccurredAt,
	}
}
