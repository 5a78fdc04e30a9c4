package trade

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/numbering"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType distinguishes sales from purchases
type OrderType string

const (
	OrderTypeSale     OrderType = "SALE"
	OrderTypePurchase OrderType = "PURCHASE"
)

// IsValid returns true if the order type is valid
func (t OrderType) IsValid() bool {
	return t == OrderTypeSale || t == OrderTypePurchase
}

// DocumentType returns the numbering document type for this order type
func (t OrderType) DocumentType() numbering.DocumentType {
	if t == OrderTypePurchase {
		return numbering.DocumentTypePurchaseOrder
	}
	return numbering.DocumentTypeInvoice
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus tracks how much of the order has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// OrderLine is a single product position on an order. Lines are fixed at
// order creation; the product name and price are denormalized so the
// document stays stable when the catalog changes later.
type OrderLine struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// Order is the aggregate root of a committed trade document (sale invoice
// or purchase order). An order is created already priced and numbered;
// payment state evolves through ApplyPayment, and Cancel is the only
// other mutation.
type Order struct {
	shared.BaseAggregateRoot
	DocumentNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderType      OrderType       `gorm:"type:varchar(20);not null;index"`
	CounterpartyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;index"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(20);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tax            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Shipping       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DueAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes          string          `gorm:"type:varchar(500)"`
	CancelReason   string          `gorm:"type:varchar(255)"`
	CancelledAt    *time.Time
	Lines          []OrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "order_headers"
}

// NewOrder creates a priced, numbered order in COMPLETED state. The
// caller (the order transaction service) is responsible for having
// reserved the document number and applied stock deltas in the same
// transaction.
func NewOrder(documentNumber string, orderType OrderType, counterpartyID, branchID uuid.UUID, lines []OrderLine, totals Totals) (*Order, error) {
	if documentNumber == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Document number cannot be empty")
	}
	if !orderType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Unknown order type")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Counterparty is required")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Branch is required")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidOrder, "Order must contain at least one line")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DocumentNumber:    documentNumber,
		OrderType:         orderType,
		CounterpartyID:    counterpartyID,
		BranchID:          branchID,
		Status:            OrderStatusCompleted,
		PaymentStatus:     PaymentStatusUnpaid,
		Subtotal:          totals.Subtotal,
		Discount:          totals.Discount,
		Tax:               totals.Tax,
		Shipping:          totals.Shipping,
		TotalAmount:       totals.Total,
		PaidAmount:        decimal.Zero,
		DueAmount:         totals.Total,
	}

	for i := range lines {
		lines[i].OrderID = order.ID
	}
	order.Lines = lines

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// NewOrderLine builds a line from catalog data and the requested quantity
func NewOrderLine(productID uuid.UUID, productCode, productName string, quantity, unitPrice decimal.Decimal) (OrderLine, error) {
	if productID == uuid.Nil {
		return OrderLine{}, shared.NewDomainError(shared.CodeInvalidOrder, "Line product is required")
	}
	if !quantity.IsPositive() {
		return OrderLine{}, shared.NewDomainError(shared.CodeInvalidOrder, "Line quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return OrderLine{}, shared.NewDomainError(shared.CodeInvalidOrder, "Line unit price cannot be negative")
	}
	return OrderLine{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductCode: productCode,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   quantity.Mul(unitPrice),
	}, nil
}

// ApplyPayment records a payment against the order and recomputes the
// due amount and payment status. The due amount never goes negative:
// with allowOverpayment the excess simply clamps to zero, without it
// any amount above the outstanding balance is rejected.
func (o *Order) ApplyPayment(amount decimal.Decimal, allowOverpayment bool) error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError(shared.CodeInvalidPayment, "Cannot pay a cancelled order")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError(shared.CodeInvalidPayment, "Payment amount must be positive")
	}
	if !allowOverpayment && amount.GreaterThan(o.DueAmount) {
		return shared.NewDomainError(shared.CodeInvalidPayment, "Payment exceeds the outstanding balance")
	}

	o.PaidAmount = o.PaidAmount.Add(amount)
	o.DueAmount = o.TotalAmount.Sub(o.PaidAmount)
	if o.DueAmount.IsNegative() {
		o.DueAmount = decimal.Zero
	}
	o.refreshPaymentStatus()
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderPaymentAppliedEvent(o, amount))

	return nil
}

func (o *Order) refreshPaymentStatus() {
	switch {
	case o.PaidAmount.IsZero():
		o.PaymentStatus = PaymentStatusUnpaid
	case o.PaidAmount.GreaterThanOrEqual(o.TotalAmount):
		o.PaymentStatus = PaymentStatusPaid
	default:
		o.PaymentStatus = PaymentStatusPartial
	}
}

// Cancel marks the order as cancelled. Stock reversal is handled by the
// order transaction service in the same transaction.
func (o *Order) Cancel(reason string) error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))

	return nil
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsFullyPaid returns true if nothing remains outstanding
func (o *Order) IsFullyPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// StockDirection returns the sign applied to line quantities when the
// order hits the inventory ledger: sales consume stock, purchases add it.
func (o *Order) StockDirection() decimal.Decimal {
	if o.OrderType == OrderTypePurchase {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}
