package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativePrice rejects line items with a negative pre-tax price
	// or tax rate.
	ErrNegativePrice = errors.New("pricing: price and tax rates must not be negative")
	// ErrInvalidQuantity rejects line items with a quantity below 1.
	ErrInvalidQuantity = errors.New("pricing: quantity must be at least 1")
)

var hundred = decimal.NewFromInt(100)

// LineItem is one taxed position: the product's price excluding tax, its
// CGST/SGST percentages and the ordered quantity.
type LineItem struct {
	PriceExcludingTax decimal.Decimal
	CGSTPercent       decimal.Decimal
	SGSTPercent       decimal.Decimal
	Quantity          int
}

// Breakdown is the computed total for a list of line items. All values
// are exact decimals; callers round at presentation boundaries only.
type Breakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	TotalBeforeFees decimal.Decimal `json:"total_before_fees"`
}

// Calculate turns a line-item list into a tax breakdown and payable
// total. Pure and deterministic; the only failure modes are negative
// prices/rates and non-positive quantities.
func Calculate(items []LineItem) (*Breakdown, error) {
	b := &Breakdown{
		Subtotal: decimal.Zero,
		CGST:     decimal.Zero,
		SGST:     decimal.Zero,
	}

	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if item.PriceExcludingTax.IsNegative() || item.CGSTPercent.IsNegative() || item.SGSTPercent.IsNegative() {
			return nil, ErrNegativePrice
		}

		lineSubtotal := item.PriceExcludingTax.Mul(decimal.NewFromInt(int64(item.Quantity)))
		b.Subtotal = b.Subtotal.Add(lineSubtotal)
		b.CGST = b.CGST.Add(lineSubtotal.Mul(item.CGSTPercent).Div(hundred))
		b.SGST = b.SGST.Add(lineSubtotal.Mul(item.SGSTPercent).Div(hundred))
	}

	b.TotalTax = b.CGST.Add(b.SGST)
	b.TotalBeforeFees = b.Subtotal.Add(b.TotalTax)
	return b, nil
}
