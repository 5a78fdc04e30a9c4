package finance

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories
// payment allocation needs. Locking the order and appending the payment
// happen in the same database transaction.
type TransactionScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories scoped to the current
// transaction.
type TransactionalRepositories interface {
	// Payments returns the payment repository scoped to the transaction
	Payments() finance.PaymentRepository
	// Orders returns the order repository scoped to the transaction
	Orders() trade.OrderRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	payments finance.PaymentRepository
	orders   trade.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(payments finance.PaymentRepository, orders trade.OrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{payments: payments, orders: orders}
}

// Execute runs the function without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Payments returns the payment repository
func (s *NoOpTransactionScope) Payments() finance.PaymentRepository { return s.payments }

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() trade.OrderRepository { return s.orders }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
