package persistence

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies page/size and ordering from the filter.
// The sort column is forced through the entity's whitelist before it is
// interpolated into ORDER BY; unknown columns fall back to created_at.
func applyPagination(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}
