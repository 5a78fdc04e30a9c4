package catalog

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable/purchasable item in the catalog.
// Stock on hand is owned by the inventory ledger, never mutated here;
// the catalog carries identity, pricing and the reorder threshold.
type Product struct {
	shared.BaseAggregateRoot
	Code             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(200);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitSellPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active           bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(code, name string, unitCost, unitSellPrice valueobject.Money) (*Product, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if unitSellPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit sell price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		UnitCost:          unitCost.Amount(),
		UnitSellPrice:     unitSellPrice.Amount(),
		ReorderThreshold:  decimal.Zero,
		Active:            true,
	}, nil
}

// SetReorderThreshold sets the stock quantity below which a reorder alert fires
func (p *Product) SetReorderThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Reorder threshold cannot be negative")
	}
	p.ReorderThreshold = threshold
	p.Touch()
	p.IncrementVersion()
	return nil
}

// UpdatePricing updates cost and sell price
func (p *Product) UpdatePricing(unitCost, unitSellPrice valueobject.Money) error {
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if unitSellPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit sell price cannot be negative")
	}
	p.UnitCost = unitCost.Amount()
	p.UnitSellPrice = unitSellPrice.Amount()
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Deactivate marks the product as no longer orderable
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
	p.IncrementVersion()
}

// GetUnitCostMoney returns the unit cost as Money
func (p *Product) GetUnitCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitCost)
}

// GetUnitSellPriceMoney returns the sell price as Money
func (p *Product) GetUnitSellPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitSellPrice)
}
