// Package pricing holds the monetary arithmetic shared by sales and
// purchasing documents. All math is exact decimal.
package pricing

import (
	"shopledger/internal/core/types"

	"github.com/shopspring/decimal"
)

// PurchaseVATRate is the value-added tax rate applied to purchase
// orders: 16.5%.
var PurchaseVATRate = decimal.RequireFromString("0.165")

// LineTotal computes unitPrice * quantity - discount for one document
// line. Discounts are absolute amounts, not percentages.
func LineTotal(unitPrice types.Money, quantity int64, discount types.Money) types.Money {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Sub(discount)
}

// SumLines totals a slice of line amounts.
func SumLines(lines []types.Money) types.Money {
	total := types.Zero()
	for _, l := range lines {
		total = total.Add(l)
	}
	return total
}

// VAT returns the tax amount for a net total at the given rate, rounded
// to 2 decimal places.
func VAT(net types.Money, rate decimal.Decimal) types.Money {
	return net.Mul(rate).Round(2)
}
