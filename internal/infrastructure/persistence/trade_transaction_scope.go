package persistence

import (
	"context"

	apptrade "github.com/bizsuite/backend/internal/application/trade"
	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/partner"
	"github.com/bizsuite/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the trade TransactionScope using
// GORM transactions. Everything an order transaction touches runs against
// the same tx handle, so order, stock, sequence and payment writes commit
// or roll back as one unit.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// The transaction is rolled back if the function returns an error.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{tx: tx})
	})
}

type gormTradeRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTradeRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Stock returns the stock repository scoped to the current transaction
func (r *gormTradeRepositories) Stock() inventory.StockRepository {
	return NewGormStockRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTradeRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Branches returns the branch repository scoped to the current transaction
func (r *gormTradeRepositories) Branches() partner.BranchRepository {
	return NewGormBranchRepository(r.tx)
}

// Customers returns the customer repository scoped to the current transaction
func (r *gormTradeRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Suppliers returns the supplier repository scoped to the current transaction
func (r *gormTradeRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction
func (r *gormTradeRepositories) Payments() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Sequences returns the document number generator scoped to the current transaction
func (r *gormTradeRepositories) Sequences() numbering.Generator {
	return NewGormSequenceGenerator(r.tx)
}

var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
