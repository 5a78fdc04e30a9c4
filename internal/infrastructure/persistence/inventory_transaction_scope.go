package persistence

import (
	"context"

	appinv "github.com/bizsuite/backend/internal/application/inventory"
	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// The transaction is rolled back if the function returns an error.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

// Stock returns the stock repository scoped to the current transaction
func (r *gormInventoryRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormInventoryRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Branches returns the branch repository scoped to the current transaction
func (r *gormInventoryRepositories) Branches() partner.BranchRepository {
	return NewGormBranchRepository(r.tx)
}

// Sequences returns the document number generator scoped to the current transaction
func (r *gormInventoryRepositories) Sequences() numbering.Generator {
	return NewGormSequenceGenerator(r.tx)
}

var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormInventoryRepositories)(nil)
