package reports

import (
	"context"
)

// Repository defines report data access. Reports read committed data
// only; they never join an open transaction.
type Repository interface {
	GetProfitLoss(ctx context.Context, filter ProfitLossFilter) (*ProfitLossReport, error)
	GetCashFlow(ctx context.Context, filter CashFlowFilter) (*CashFlowReport, error)
	GetDashboard(ctx context.Context, filter DashboardFilter) (*Dashboard, error)
}
