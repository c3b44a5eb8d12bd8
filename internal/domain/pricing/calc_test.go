package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"shopledger/internal/core/types"
)

func TestLineTotal(t *testing.T) {
	got := LineTotal(types.MustMoney("12.50"), 4, types.MustMoney("5.00"))
	assert.True(t, got.Equal(types.MustMoney("45.00")), "got %s", got)
}

func TestLineTotal_NoDiscount(t *testing.T) {
	got := LineTotal(types.MustMoney("0.10"), 3, types.Zero())
	// Exact decimal: no float drift on 0.10 * 3.
	assert.Equal(t, "0.30", got.StringFixed(2))
}

func TestSumLines(t *testing.T) {
	got := SumLines([]types.Money{
		types.MustMoney("10.00"),
		types.MustMoney("2.55"),
		types.MustMoney("0.45"),
	})
	assert.True(t, got.Equal(types.MustMoney("13.00")))
}

func TestVAT_PurchaseRate(t *testing.T) {
	got := VAT(types.MustMoney("1000.00"), PurchaseVATRate)
	assert.Equal(t, "165.00", got.StringFixed(2))
}

func TestVAT_Rounding(t *testing.T) {
	got := VAT(types.MustMoney("99.99"), PurchaseVATRate)
	// 99.99 * 0.165 = 16.49835, rounds to 16.50.
	assert.Equal(t, "16.50", got.StringFixed(2))
}

func TestVAT_ZeroRate(t *testing.T) {
	got := VAT(types.MustMoney("500.00"), decimal.Zero)
	assert.True(t, got.IsZero())
}
