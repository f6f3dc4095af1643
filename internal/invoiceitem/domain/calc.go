package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineAmounts holds the derived monetary fields of a line item, each
// rounded half-up to two decimal places.
type LineAmounts struct {
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	TotalWithTax decimal.Decimal
}

// ComputeLine derives subtotal, tax amount and tax-inclusive total from a
// line item's inputs. Every write path goes through here so the derived
// columns never drift from the inputs they were computed from.
func ComputeLine(quantity int64, unitPrice, taxPercentage decimal.Decimal) (LineAmounts, error) {
	if quantity < 1 {
		return LineAmounts{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, ErrInvalidUnitPrice
	}
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(hundred) {
		return LineAmounts{}, ErrInvalidTaxPercentage
	}

	subtotal := decimal.NewFromInt(quantity).Mul(unitPrice).Round(2)
	taxAmount := subtotal.Mul(taxPercentage).Div(hundred).Round(2)
	return LineAmounts{
		Subtotal:     subtotal,
		TaxAmount:    taxAmount,
		TotalWithTax: subtotal.Add(taxAmount),
	}, nil
}
