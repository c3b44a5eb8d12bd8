// Package document_repo provides PostgreSQL implementations for the
// sale and purchase document repositories. Headers and items live in
// separate tables and are written together inside the caller's
// transaction.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/domain/sales"
	"shopledger/internal/infrastructure/storage/postgres"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
)

var saleColumns = []string{
	"id", "number", "shop_id", "customer_id", "cashier_id", "status",
	"payment_method", "total_amount", "tax_amount", "final_amount",
	"notes", "created_at",
}

var saleItemColumns = []string{
	"id", "sale_id", "product_id", "quantity", "unit_price", "discount", "line_total",
}

// SaleRepo implements sales.Repository.
type SaleRepo struct {
	db      *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewSaleRepo creates the sale repository.
func NewSaleRepo(db *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ sales.Repository = (*SaleRepo)(nil)

// Create inserts the header and all items.
func (r *SaleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.Insert(salesTable).
		Columns(saleColumns...).
		Values(sale.ID, sale.Number, sale.ShopID, sale.CustomerID, sale.CashierID,
			sale.Status, sale.PaymentMethod, sale.TotalAmount, sale.TaxAmount,
			sale.FinalAmount, sale.Notes, sale.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	if len(sale.Items) == 0 {
		return nil
	}
	iq := r.builder.Insert(saleItemsTable).Columns(saleItemColumns...)
	for _, item := range sale.Items {
		iq = iq.Values(item.ID, item.SaleID, item.ProductID, item.Quantity,
			item.UnitPrice, item.Discount, item.LineTotal)
	}
	sql, args, err = iq.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale items: %w", err)
	}
	return nil
}

// GetByID retrieves a sale with its items.
func (r *SaleRepo) GetByID(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	q := r.builder.Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale sales.Sale
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID.String())
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	items, err := r.loadItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleID id.ID) ([]sales.Item, error) {
	q := r.builder.Select(saleItemColumns...).
		From(saleItemsTable).
		Where(squirrel.Eq{"sale_id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	var items []sales.Item
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	return items, nil
}

// List retrieves sale headers matching the filter, newest first.
// Items are not loaded in listings.
func (r *SaleRepo) List(ctx context.Context, filter sales.Filter) ([]sales.Sale, error) {
	q := r.builder.Select(saleColumns...).
		From(salesTable).
		OrderBy("created_at DESC")

	if filter.ShopID != nil {
		q = q.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []sales.Sale
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return out, nil
}
