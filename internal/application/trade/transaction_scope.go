package trade

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/partner"
	"github.com/bizsuite/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to everything an order
// transaction touches: the order itself, stock, the document sequence and
// the optional immediate payment. All of it commits or rolls back as one
// unit; a failed stock check leaves no number consumed by the order and
// no partial writes behind.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories scoped to the current
// transaction.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the transaction
	Orders() trade.OrderRepository
	// Stock returns the stock repository scoped to the transaction
	Stock() inventory.StockRepository
	// Products returns the product repository scoped to the transaction
	Products() catalog.ProductRepository
	// Branches returns the branch repository scoped to the transaction
	Branches() partner.BranchRepository
	// Customers returns the customer repository scoped to the transaction
	Customers() partner.CustomerRepository
	// Suppliers returns the supplier repository scoped to the transaction
	Suppliers() partner.SupplierRepository
	// Payments returns the payment repository scoped to the transaction
	Payments() finance.PaymentRepository
	// Sequences returns the document number generator scoped to the transaction
	Sequences() numbering.Generator
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	orders    trade.OrderRepository
	stock     inventory.StockRepository
	products  catalog.ProductRepository
	branches  partner.BranchRepository
	customers partner.CustomerRepository
	suppliers partner.SupplierRepository
	payments  finance.PaymentRepository
	sequences numbering.Generator
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orders trade.OrderRepository,
	stock inventory.StockRepository,
	products catalog.ProductRepository,
	branches partner.BranchRepository,
	customers partner.CustomerRepository,
	suppliers partner.SupplierRepository,
	payments finance.PaymentRepository,
	sequences numbering.Generator,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orders:    orders,
		stock:     stock,
		products:  products,
		branches:  branches,
		customers: customers,
		suppliers: suppliers,
		payments:  payments,
		sequences: sequences,
	}
}

// Execute runs the function without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() trade.OrderRepository { return s.orders }

// Stock returns the stock repository
func (s *NoOpTransactionScope) Stock() inventory.StockRepository { return s.stock }

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Branches returns the branch repository
func (s *NoOpTransactionScope) Branches() partner.BranchRepository { return s.branches }

// Customers returns the customer repository
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.customers }

// Suppliers returns the supplier repository
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository { return s.suppliers }

// Payments returns the payment repository
func (s *NoOpTransactionScope) Payments() finance.PaymentRepository { return s.payments }

// Sequences returns the document number generator
func (s *NoOpTransactionScope) Sequences() numbering.Generator { return s.sequences }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
