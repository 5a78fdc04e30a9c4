package trade

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PricingLine is the input to the pricing calculation for one order line
type PricingLine struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Total returns quantity * unit price for the line
func (l PricingLine) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Totals is the result of a pricing calculation. All amounts are
// non-negative and Total = Subtotal - Discount + Tax + Shipping.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives order totals from line items and order-level
// charges. It is a pure calculation: no persistence, no rounding
// surprises. Tax applies to the discounted subtotal and is rounded to
// 2 decimal places; shipping is never taxed.
func ComputeTotals(lines []PricingLine, discount, taxRate, shipping decimal.Decimal) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Order must contain at least one line")
	}
	if discount.IsNegative() {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Discount cannot be negative")
	}
	if taxRate.IsNegative() {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Tax rate cannot be negative")
	}
	if shipping.IsNegative() {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Shipping fee cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if !line.Quantity.IsPositive() {
			return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Line unit price cannot be negative")
		}
		subtotal = subtotal.Add(line.Total())
	}

	if discount.GreaterThan(subtotal) {
		return Totals{}, shared.NewDomainError(shared.CodeInvalidOrder, "Discount cannot exceed the order subtotal")
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxRate).Round(2)
	total := taxable.Add(tax).Add(shipping)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}, nil
}
