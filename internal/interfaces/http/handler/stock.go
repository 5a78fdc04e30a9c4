package handler

import (
	inventoryapp "github.com/bizsuite/backend/internal/application/inventory"
	"github.com/bizsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock API endpoints
type StockHandler struct {
	BaseHandler
	ledgerService *inventoryapp.LedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(ledgerService *inventoryapp.LedgerService) *StockHandler {
	return &StockHandler{ledgerService: ledgerService}
}

type productIDRequest struct {
	ProductID string `uri:"productId" binding:"required,uuid"`
}

// Adjust handles POST /api/v1/stock/adjust
func (h *StockHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.AdjustStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// A nil movement means the target already matched the current quantity
	h.Success(c, movement)
}

// Delta handles POST /api/v1/stock/delta
func (h *StockHandler) Delta(c *gin.Context) {
	var req inventoryapp.ApplyDeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.ledgerService.ApplyDelta(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// Get handles GET /api/v1/stock/:productId
func (h *StockHandler) Get(c *gin.Context) {
	var req productIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	level, err := h.ledgerService.GetStock(c.Request.Context(), uuid.MustParse(req.ProductID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, level)
}

// Movements handles GET /api/v1/stock/:productId/movements
func (h *StockHandler) Movements(c *gin.Context) {
	var req productIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.ledgerService.GetMovements(
		c.Request.Context(),
		uuid.MustParse(req.ProductID),
		buildFilter(listReq),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
