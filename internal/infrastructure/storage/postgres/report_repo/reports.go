// Package report_repo provides SQL-side report aggregation. Reports
// read whatever is committed; they do not join open transactions.
package report_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"shopledger/internal/core/types"
	"shopledger/internal/domain/reports"
	"shopledger/internal/infrastructure/storage/postgres"
)

// Repo implements reports.Repository.
type Repo struct {
	db *postgres.TxManager
}

// NewRepo creates the report repository.
func NewRepo(db *postgres.TxManager) *Repo {
	return &Repo{db: db}
}

var _ reports.Repository = (*Repo)(nil)

// GetProfitLoss aggregates revenue against cost of goods for the
// period. Cost of goods values sold units at the current record cost
// price of the selling shop.
func (r *Repo) GetProfitLoss(ctx context.Context, filter reports.ProfitLossFilter) (*reports.ProfitLossReport, error) {
	const salesSQL = `
		SELECT
			COALESCE(SUM(s.final_amount), 0) AS revenue,
			COUNT(*) AS sale_count,
			COALESCE(SUM(cogs.amount), 0) AS cost_of_goods
		FROM sales s
		LEFT JOIN LATERAL (
			SELECT SUM(si.quantity * ir.cost_price) AS amount
			FROM sale_items si
			JOIN inventory_records ir
				ON ir.product_id = si.product_id AND ir.shop_id = s.shop_id
			WHERE si.sale_id = s.id
		) cogs ON true
		WHERE s.created_at >= $1 AND s.created_at <= $2
			AND ($3::uuid IS NULL OR s.shop_id = $3)`

	var row struct {
		Revenue     types.Money `db:"revenue"`
		SaleCount   int64       `db:"sale_count"`
		CostOfGoods types.Money `db:"cost_of_goods"`
	}
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &row, salesSQL,
		filter.From, filter.To, filter.ShopID); err != nil {
		return nil, fmt.Errorf("aggregate sales: %w", err)
	}

	const taxSQL = `
		SELECT COALESCE(SUM(tax_amount), 0)
		FROM purchases
		WHERE created_at >= $1 AND created_at <= $2
			AND ($3::uuid IS NULL OR shop_id = $3)`

	var purchaseTax types.Money
	if err := r.db.GetQuerier(ctx).QueryRow(ctx, taxSQL,
		filter.From, filter.To, filter.ShopID).Scan(&purchaseTax); err != nil {
		return nil, fmt.Errorf("aggregate purchase tax: %w", err)
	}

	report := &reports.ProfitLossReport{
		From:        filter.From,
		To:          filter.To,
		Revenue:     row.Revenue,
		CostOfGoods: row.CostOfGoods,
		GrossProfit: row.Revenue.Sub(row.CostOfGoods),
		PurchaseTax: purchaseTax,
		SaleCount:   row.SaleCount,
	}
	if !row.Revenue.IsZero() {
		report.MarginPct = report.GrossProfit.
			Div(row.Revenue).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return report, nil
}

// GetCashFlow buckets sale inflow by payment method and nets received
// purchase outflow.
func (r *Repo) GetCashFlow(ctx context.Context, filter reports.CashFlowFilter) (*reports.CashFlowReport, error) {
	const inflowSQL = `
		SELECT payment_method, COALESCE(SUM(final_amount), 0) AS amount, COUNT(*) AS count
		FROM sales
		WHERE created_at >= $1 AND created_at <= $2
			AND ($3::uuid IS NULL OR shop_id = $3)
		GROUP BY payment_method
		ORDER BY payment_method`

	var lines []reports.CashFlowLine
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &lines, inflowSQL,
		filter.From, filter.To, filter.ShopID); err != nil {
		return nil, fmt.Errorf("aggregate inflows: %w", err)
	}

	const outflowSQL = `
		SELECT COALESCE(SUM(final_amount), 0)
		FROM purchases
		WHERE status = 'COMPLETED'
			AND received_at >= $1 AND received_at <= $2
			AND ($3::uuid IS NULL OR shop_id = $3)`

	var outflow types.Money
	if err := r.db.GetQuerier(ctx).QueryRow(ctx, outflowSQL,
		filter.From, filter.To, filter.ShopID).Scan(&outflow); err != nil {
		return nil, fmt.Errorf("aggregate outflows: %w", err)
	}

	report := &reports.CashFlowReport{
		From:         filter.From,
		To:           filter.To,
		Inflows:      lines,
		TotalInflow:  types.Zero(),
		TotalOutflow: outflow,
	}
	for _, l := range lines {
		report.TotalInflow = report.TotalInflow.Add(l.Amount)
	}
	report.NetCashFlow = report.TotalInflow.Sub(outflow)
	return report, nil
}

// GetDashboard builds the operational snapshot.
func (r *Repo) GetDashboard(ctx context.Context, filter reports.DashboardFilter) (*reports.Dashboard, error) {
	const todaySQL = `
		SELECT COALESCE(SUM(final_amount), 0) AS total, COUNT(*) AS count
		FROM sales
		WHERE created_at >= date_trunc('day', now())
			AND ($1::uuid IS NULL OR shop_id = $1)`

	dash := &reports.Dashboard{}
	if err := r.db.GetQuerier(ctx).QueryRow(ctx, todaySQL, filter.ShopID).
		Scan(&dash.TodaySales, &dash.TodaySaleCount); err != nil {
		return nil, fmt.Errorf("aggregate today sales: %w", err)
	}

	const pendingSQL = `
		SELECT COUNT(*) FROM purchases
		WHERE status = 'PENDING' AND ($1::uuid IS NULL OR shop_id = $1)`
	if err := r.db.GetQuerier(ctx).QueryRow(ctx, pendingSQL, filter.ShopID).
		Scan(&dash.PendingPurchases); err != nil {
		return nil, fmt.Errorf("count pending purchases: %w", err)
	}

	const lowStockSQL = `
		SELECT COUNT(*) FROM inventory_records
		WHERE quantity < $1 AND ($2::uuid IS NULL OR shop_id = $2)`
	if err := r.db.GetQuerier(ctx).QueryRow(ctx, lowStockSQL,
		filter.LowStockThreshold, filter.ShopID).Scan(&dash.LowStockCount); err != nil {
		return nil, fmt.Errorf("count low stock: %w", err)
	}

	const topSQL = `
		SELECT si.product_id, p.name,
			SUM(si.quantity) AS units_sold,
			COALESCE(SUM(si.line_total), 0) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= now() - interval '30 days'
			AND ($1::uuid IS NULL OR s.shop_id = $1)
		GROUP BY si.product_id, p.name
		ORDER BY units_sold DESC
		LIMIT 5`

	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &dash.TopProducts, topSQL,
		filter.ShopID); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return dash, nil
}
