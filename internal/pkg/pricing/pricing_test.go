package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(price string, cgst, sgst string, qty int) LineItem {
	return LineItem{
		PriceExcludingTax: decimal.RequireFromString(price),
		CGSTPercent:       decimal.RequireFromString(cgst),
		SGSTPercent:       decimal.RequireFromString(sgst),
		Quantity:          qty,
	}
}

func TestCalculateSingleItem(t *testing.T) {
	b, err := Calculate([]LineItem{item("100", "9", "9", 2)})
	require.NoError(t, err)

	assert.True(t, b.Subtotal.Equal(decimal.NewFromInt(200)), "subtotal = %s", b.Subtotal)
	assert.True(t, b.CGST.Equal(decimal.NewFromInt(18)), "cgst = %s", b.CGST)
	assert.True(t, b.SGST.Equal(decimal.NewFromInt(18)), "sgst = %s", b.SGST)
	assert.True(t, b.TotalTax.Equal(decimal.NewFromInt(36)), "total tax = %s", b.TotalTax)
	assert.True(t, b.TotalBeforeFees.Equal(decimal.NewFromInt(236)), "total = %s", b.TotalBeforeFees)
}

func TestCalculateMixedRates(t *testing.T) {
	b, err := Calculate([]LineItem{
		item("52.38", "2.5", "2.5", 3), // milk, 5% GST split
		item("190.48", "6", "6", 1),    // ghee, 12% GST split
	})
	require.NoError(t, err)

	// 52.38*3 + 190.48 = 347.62
	assert.True(t, b.Subtotal.Equal(decimal.RequireFromString("347.62")), "subtotal = %s", b.Subtotal)
	// cgst = 157.14*0.025 + 190.48*0.06 = 3.9285 + 11.4288
	assert.True(t, b.CGST.Equal(decimal.RequireFromString("15.3573")), "cgst = %s", b.CGST)
	assert.True(t, b.SGST.Equal(b.CGST), "cgst and sgst rates match, amounts must too")
	assert.True(t, b.TotalBeforeFees.Equal(b.Subtotal.Add(b.TotalTax)))
}

func TestCalculateEmptyList(t *testing.T) {
	b, err := Calculate(nil)
	require.NoError(t, err)
	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.TotalBeforeFees.IsZero())
}

func TestCalculateNoDriftOverRepeatedAdditions(t *testing.T) {
	// 0.10 added 1000 times must be exactly 100, not 99.999… as with floats.
	items := make([]LineItem, 1000)
	for i := range items {
		items[i] = item("0.10", "0", "0", 1)
	}
	b, err := Calculate(items)
	require.NoError(t, err)
	assert.True(t, b.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal = %s", b.Subtotal)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	_, err := Calculate([]LineItem{item("-1", "9", "9", 1)})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = Calculate([]LineItem{item("10", "-9", "9", 1)})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = Calculate([]LineItem{item("10", "9", "9", 0)})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Calculate([]LineItem{item("10", "9", "9", -2)})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
