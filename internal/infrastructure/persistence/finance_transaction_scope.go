package persistence

import (
	"context"

	appfin "github.com/bizsuite/backend/internal/application/finance"
	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormFinanceTransactionScope implements the finance TransactionScope
// using GORM transactions.
type GormFinanceTransactionScope struct {
	db *gorm.DB
}

// NewGormFinanceTransactionScope creates a new GormFinanceTransactionScope
func NewGormFinanceTransactionScope(db *gorm.DB) *GormFinanceTransactionScope {
	return &GormFinanceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// The transaction is rolled back if the function returns an error.
func (s *GormFinanceTransactionScope) Execute(ctx context.Context, fn func(repos appfin.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormFinanceRepositories{tx: tx})
	})
}

type gormFinanceRepositories struct {
	tx *gorm.DB
}

// Payments returns the payment repository scoped to the current transaction
func (r *gormFinanceRepositories) Payments() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormFinanceRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

var _ appfin.TransactionScope = (*GormFinanceTransactionScope)(nil)
var _ appfin.TransactionalRepositories = (*gormFinanceRepositories)(nil)
