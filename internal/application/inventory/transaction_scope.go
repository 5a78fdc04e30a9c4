package inventory

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/catalog"
	"github.com/bizsuite/backend/internal/domain/inventory"
	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the repositories the
// stock ledger needs. All repository operations inside Execute share one
// database transaction and commit or roll back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories scoped to the current
// transaction.
type TransactionalRepositories interface {
	// Stock returns the stock repository scoped to the transaction
	Stock() inventory.StockRepository
	// Products returns the product repository scoped to the transaction
	Products() catalog.ProductRepository
	// Branches returns the branch repository scoped to the transaction
	Branches() partner.BranchRepository
	// Sequences returns the document number generator scoped to the transaction
	Sequences() numbering.Generator
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	stock     inventory.StockRepository
	products  catalog.ProductRepository
	branches  partner.BranchRepository
	sequences numbering.Generator
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	stock inventory.StockRepository,
	products catalog.ProductRepository,
	branches partner.BranchRepository,
	sequences numbering.Generator,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stock:     stock,
		products:  products,
		branches:  branches,
		sequences: sequences,
	}
}

// Execute runs the function without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Stock returns the stock repository
func (s *NoOpTransactionScope) Stock() inventory.StockRepository { return s.stock }

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.products }

// Branches returns the branch repository
func (s *NoOpTransactionScope) Branches() partner.BranchRepository { return s.branches }

// Sequences returns the document number generator
func (s *NoOpTransactionScope) Sequences() numbering.Generator { return s.sequences }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
