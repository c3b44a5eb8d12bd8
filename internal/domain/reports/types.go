// Package reports provides read-only financial and operational report
// generation over posted documents and the stock ledger.
package reports

import (
	"time"

	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
)

// --- Profit & Loss ---

// ProfitLossFilter bounds a profit and loss report.
type ProfitLossFilter struct {
	From   time.Time
	To     time.Time
	ShopID *id.ID
}

// ProfitLossReport aggregates sales revenue against cost of goods and
// purchase spend for a period.
type ProfitLossReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Revenue      types.Money `json:"revenue"`
	CostOfGoods  types.Money `json:"costOfGoods"`
	GrossProfit  types.Money `json:"grossProfit"`
	PurchaseTax  types.Money `json:"purchaseTax"`
	SaleCount    int64       `json:"saleCount"`
	MarginPct    types.Money `json:"marginPct"`
}

// --- Cash Flow ---

// CashFlowFilter bounds a cash flow report.
type CashFlowFilter struct {
	From   time.Time
	To     time.Time
	ShopID *id.ID
}

// CashFlowLine is one payment-method bucket.
type CashFlowLine struct {
	PaymentMethod string      `json:"paymentMethod"`
	Amount        types.Money `json:"amount"`
	Count         int64       `json:"count"`
}

// CashFlowReport breaks inflow from sales down by payment method and
// nets purchase outflow for the period.
type CashFlowReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Inflows      []CashFlowLine `json:"inflows"`
	TotalInflow  types.Money    `json:"totalInflow"`
	TotalOutflow types.Money    `json:"totalOutflow"`
	NetCashFlow  types.Money    `json:"netCashFlow"`
}

// --- Dashboard ---

// DashboardFilter scopes the operational snapshot.
type DashboardFilter struct {
	ShopID *id.ID
	// LowStockThreshold marks records at risk. Defaults to 10.
	LowStockThreshold int64
}

// TopProduct is a best-seller entry.
type TopProduct struct {
	ProductID id.ID       `json:"productId"`
	Name      string      `json:"name"`
	UnitsSold int64       `json:"unitsSold"`
	Revenue   types.Money `json:"revenue"`
}

// Dashboard is the operational snapshot for today.
type Dashboard struct {
	TodaySales       types.Money  `json:"todaySales"`
	TodaySaleCount   int64        `json:"todaySaleCount"`
	PendingPurchases int64        `json:"pendingPurchases"`
	LowStockCount    int64        `json:"lowStockCount"`
	TopProducts      []TopProduct `json:"topProducts"`
}
