package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeLine(t *testing.T) {
	amounts, err := ComputeLine(3, d("100"), d("18"))
	require.NoError(t, err)
	assert.True(t, amounts.Subtotal.Equal(d("300")), "subtotal %s", amounts.Subtotal)
	assert.True(t, amounts.TaxAmount.Equal(d("54")), "tax %s", amounts.TaxAmount)
	assert.True(t, amounts.TotalWithTax.Equal(d("354")), "total %s", amounts.TotalWithTax)
}

func TestComputeLineRounding(t *testing.T) {
	// 7 x 9.99 = 69.93; 12.5% of that is 8.74125, rounded half-up.
	amounts, err := ComputeLine(7, d("9.99"), d("12.5"))
	require.NoError(t, err)
	assert.True(t, amounts.Subtotal.Equal(d("69.93")), "subtotal %s", amounts.Subtotal)
	assert.True(t, amounts.TaxAmount.Equal(d("8.74")), "tax %s", amounts.TaxAmount)
	assert.True(t, amounts.TotalWithTax.Equal(d("78.67")), "total %s", amounts.TotalWithTax)
}

func TestComputeLineZeroTax(t *testing.T) {
	amounts, err := ComputeLine(2, d("49.50"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, amounts.TaxAmount.IsZero())
	assert.True(t, amounts.TotalWithTax.Equal(amounts.Subtotal))
}

func TestComputeLineZeroUnitPrice(t *testing.T) {
	amounts, err := ComputeLine(5, decimal.Zero, d("18"))
	require.NoError(t, err)
	assert.True(t, amounts.Subtotal.IsZero())
	assert.True(t, amounts.TaxAmount.IsZero())
	assert.True(t, amounts.TotalWithTax.IsZero())
}

func TestComputeLineBounds(t *testing.T) {
	_, err := ComputeLine(0, d("10"), d("18"))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeLine(-3, d("10"), d("18"))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeLine(1, d("-0.01"), d("18"))
	assert.ErrorIs(t, err, ErrInvalidUnitPrice)

	_, err = ComputeLine(1, d("10"), d("-1"))
	assert.ErrorIs(t, err, ErrInvalidTaxPercentage)

	_, err = ComputeLine(1, d("10"), d("100.01"))
	assert.ErrorIs(t, err, ErrInvalidTaxPercentage)

	// 100% tax is still in range.
	amounts, err := ComputeLine(1, d("10"), d("100"))
	require.NoError(t, err)
	assert.True(t, amounts.TotalWithTax.Equal(d("20")))
}

func TestComputeLineConsistency(t *testing.T) {
	cases := []struct {
		qty   int64
		price string
		tax   string
	}{
		{1, "0.01", "0"},
		{3, "33.33", "5"},
		{12, "149.99", "12"},
		{250, "7.77", "18"},
		{999, "0.10", "28"},
	}
	for _, tc := range cases {
		amounts, err := ComputeLine(tc.qty, d(tc.price), d(tc.tax))
		require.NoError(t, err)
		assert.True(t, amounts.TotalWithTax.Equal(amounts.Subtotal.Add(amounts.TaxAmount)),
			"qty=%d price=%s tax=%s", tc.qty, tc.price, tc.tax)
		want := amounts.Subtotal.Mul(d(tc.tax)).Div(hundred).Round(2)
		assert.True(t, amounts.TaxAmount.Equal(want),
			"qty=%d price=%s tax=%s got=%s want=%s", tc.qty, tc.price, tc.tax, amounts.TaxAmount, want)
	}
}
