package persistence

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByProduct finds the stock level for a product
func (r *GormStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		First(&level, "product_id = ?", productID).Error; err != nil {
		return nil, translateError(err)
	}
	return &level, nil
}

// FindByProductForUpdate finds the stock level under a FOR UPDATE row lock.
// Must be called inside a transaction; concurrent writers for the same
// product serialize here.
func (r *GormStockRepository) FindByProductForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&level, "product_id = ?", productID).Error; err != nil {
		return nil, translateError(err)
	}
	return &level, nil
}

// Create inserts a new stock level row
func (r *GormStockRepository) Create(ctx context.Context, level *inventory.StockLevel) error {
	if err := r.db.WithContext(ctx).Create(level).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Save persists quantity changes with an optimistic version check.
// The aggregate has already incremented its version; the predicate matches
// the previous one.
func (r *GormStockRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	result := r.db.WithContext(ctx).
		Model(level).
		Where("id = ? AND version = ?", level.ID, level.Version-1).
		Updates(map[string]interface{}{
			"quantity":   level.Quantity,
			"version":    level.Version,
			"updated_at": level.UpdatedAt,
		})

	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// AppendMovement appends an audit record. Movements are insert-only.
func (r *GormStockRepository) AppendMovement(ctx context.Context, movement *inventory.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindMovementsByProduct returns the movement history for a product
func (r *GormStockRepository) FindMovementsByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := applyPagination(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("product_id = ?", productID),
		filter,
		StockMovementSortFields,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, translateError(err)
	}
	return movements, nil
}

// CountMovementsByProduct returns the movement count for a product
func (r *GormStockRepository) CountMovementsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
