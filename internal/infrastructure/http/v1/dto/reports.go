package dto

import (
	"time"

	"shopledger/internal/domain/reports"
)

// ReportPeriodParams bounds a report. Both dates are optional; the
// service defaults to the trailing month.
type ReportPeriodParams struct {
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	ShopID string     `form:"shopId"`
}

// ToProfitLossFilter converts to a domain filter.
func (p ReportPeriodParams) ToProfitLossFilter() (reports.ProfitLossFilter, error) {
	f := reports.ProfitLossFilter{}
	if p.From != nil {
		f.From = *p.From
	}
	if p.To != nil {
		f.To = *p.To
	}
	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID
	return f, nil
}

// ToCashFlowFilter converts to a domain filter.
func (p ReportPeriodParams) ToCashFlowFilter() (reports.CashFlowFilter, error) {
	f := reports.CashFlowFilter{}
	if p.From != nil {
		f.From = *p.From
	}
	if p.To != nil {
		f.To = *p.To
	}
	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID
	return f, nil
}

// DashboardParams scopes the dashboard snapshot.
type DashboardParams struct {
	ShopID            string `form:"shopId"`
	LowStockThreshold int64  `form:"lowStockThreshold" binding:"omitempty,min=1"`
}

// ToFilter converts to a domain filter.
func (p DashboardParams) ToFilter() (reports.DashboardFilter, error) {
	f := reports.DashboardFilter{LowStockThreshold: p.LowStockThreshold}
	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID
	return f, nil
}
