package persistence

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/finance"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
// Payments are insert-only; there is no update or delete.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Append inserts a payment record
func (r *GormPaymentRepository) Append(ctx context.Context, payment *finance.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var payment finance.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &payment, nil
}

// FindByOrder finds all payments recorded against an order
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.Payment, error) {
	var payments []finance.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, translateError(err)
	}
	return payments, nil
}

// FindByCounterparty finds payments for a counterparty
func (r *GormPaymentRepository) FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter shared.Filter) ([]finance.Payment, error) {
	var payments []finance.Payment
	query := applyPagination(
		r.db.WithContext(ctx).Model(&finance.Payment{}).
			Where("counterparty_id = ?", counterpartyID),
		filter,
		PaymentSortFields,
	)

	if err := query.Find(&payments).Error; err != nil {
		return nil, translateError(err)
	}
	return payments, nil
}

// SumByOrder sums the total amount paid against an order
func (r *GormPaymentRepository) SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("order_id = ?", orderID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, translateError(err)
	}
	return result.Total, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
