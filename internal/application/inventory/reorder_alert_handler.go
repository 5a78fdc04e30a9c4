package inventory

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReorderAlertHandler reacts to stock dropping below a product's reorder
// threshold. Alerting is advisory: it runs after the mutation that caused
// it has committed and can never block or fail that mutation.
type ReorderAlertHandler struct {
	logger *zap.Logger
}

// NewReorderAlertHandler creates a new ReorderAlertHandler
func NewReorderAlertHandler(logger *zap.Logger) *ReorderAlertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReorderAlertHandler{logger: logger.Named("reorder_alert")}
}

// Handle processes a stock-below-threshold event
func (h *ReorderAlertHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	alert, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("stock below reorder threshold",
		zap.String("product_id", alert.ProductID.String()),
		zap.String("quantity", alert.Quantity.String()),
		zap.String("threshold", alert.Threshold.String()),
	)
	return nil
}

// EventTypes returns the event types this handler subscribes to
func (h *ReorderAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

var _ shared.EventHandler = (*ReorderAlertHandler)(nil)
