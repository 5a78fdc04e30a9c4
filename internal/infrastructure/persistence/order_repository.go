package persistence

import (
	"context"
	"errors"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindByIDForUpdate finds an order under a FOR UPDATE row lock. The lock is
// taken on the header only; lines are loaded afterwards.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Find(&order.Lines).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindByDocumentNumber finds an order by its document number
func (r *GormOrderRepository) FindByDocumentNumber(ctx context.Context, documentNumber string) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "document_number = ?", documentNumber).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := applyPagination(
		r.applyFilters(r.db.WithContext(ctx).Model(&trade.Order{}), filter),
		filter,
		OrderSortFields,
	).Preload("Lines")

	if err := query.Find(&orders).Error; err != nil {
		return nil, translateError(err)
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Create inserts the order header and its lines. A unique violation on the
// document number surfaces as ErrDuplicateDocumentNumber, which callers
// treat as fatal rather than retryable.
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateDocumentNumber
		}
		return translateError(err)
	}
	return nil
}

// Save persists header changes with an optimistic version check
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"paid_amount":    order.PaidAmount,
			"due_amount":     order.DueAmount,
			"cancel_reason":  order.CancelReason,
			"cancelled_at":   order.CancelledAt,
			"version":        order.Version,
			"updated_at":     order.UpdatedAt,
		})

	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilters narrows the query by supported filter keys
func (r *GormOrderRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "order_type":
			query = query.Where("order_type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "counterparty_id":
			query = query.Where("counterparty_id = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		}
	}
	if filter.Search != "" {
		query = query.Where("document_number ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
