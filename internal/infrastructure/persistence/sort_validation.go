package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of
// allowed columns. Returns the defaultField if the input is empty or
// not in the whitelist; sort columns are interpolated into ORDER BY, so
// nothing outside the whitelist may ever pass through.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// OrderSortFields contains allowed sort columns for order listings
var OrderSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"document_number": true,
	"order_type":      true,
	"status":          true,
	"payment_status":  true,
	"total_amount":    true,
	"due_amount":      true,
}

// StockMovementSortFields contains allowed sort columns for movement history
var StockMovementSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"occurred_at":     true,
	"delta":           true,
	"reason":          true,
	"document_number": true,
}

// PaymentSortFields contains allowed sort columns for payment listings
var PaymentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"amount":     true,
	"method":     true,
	"paid_at":    true,
}

// ProductSortFields contains allowed sort columns for product listings
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}

// PartnerSortFields contains allowed sort columns for branches,
// customers and suppliers
var PartnerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}
