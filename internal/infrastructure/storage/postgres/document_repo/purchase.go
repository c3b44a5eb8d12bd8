package document_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/domain/purchases"
	"shopledger/internal/infrastructure/storage/postgres"
)

const (
	purchasesTable     = "purchases"
	purchaseItemsTable = "purchase_items"
)

var purchaseColumns = []string{
	"id", "number", "shop_id", "supplier_id", "status",
	"total_amount", "tax_amount", "final_amount",
	"notes", "created_by", "created_at", "delivery_date", "received_at",
}

var purchaseItemColumns = []string{
	"id", "purchase_id", "product_id", "quantity", "unit_price", "discount", "line_total",
}

// PurchaseRepo implements purchases.Repository.
type PurchaseRepo struct {
	db      *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewPurchaseRepo creates the purchase repository.
func NewPurchaseRepo(db *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ purchases.Repository = (*PurchaseRepo)(nil)

// Create inserts the header and all items.
func (r *PurchaseRepo) Create(ctx context.Context, p *purchases.Purchase) error {
	q := r.builder.Insert(purchasesTable).
		Columns(purchaseColumns...).
		Values(p.ID, p.Number, p.ShopID, p.SupplierID, p.Status,
			p.TotalAmount, p.TaxAmount, p.FinalAmount,
			p.Notes, p.CreatedBy, p.CreatedAt, p.DeliveryDate, p.ReceivedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	if len(p.Items) == 0 {
		return nil
	}
	iq := r.builder.Insert(purchaseItemsTable).Columns(purchaseItemColumns...)
	for _, item := range p.Items {
		iq = iq.Values(item.ID, item.PurchaseID, item.ProductID, item.Quantity,
			item.UnitPrice, item.Discount, item.LineTotal)
	}
	sql, args, err = iq.ToSql()
	if err != nil {
		return fmt.Errorf("build items insert: %w", err)
	}
	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase items: %w", err)
	}
	return nil
}

// GetByID retrieves a purchase with its items.
func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchases.Purchase, error) {
	q := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		Where(squirrel.Eq{"id": purchaseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchases.Purchase
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", purchaseID.String())
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	iq := r.builder.Select(purchaseItemColumns...).
		From(purchaseItemsTable).
		Where(squirrel.Eq{"purchase_id": purchaseID})
	sql, args, err = iq.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &p.Items, sql, args...); err != nil {
		return nil, fmt.Errorf("load purchase items: %w", err)
	}
	return &p, nil
}

// List retrieves purchase headers matching the filter, newest first.
func (r *PurchaseRepo) List(ctx context.Context, filter purchases.Filter) ([]purchases.Purchase, error) {
	q := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		OrderBy("created_at DESC")

	if filter.ShopID != nil {
		q = q.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if filter.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *filter.SupplierID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
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

	var out []purchases.Purchase
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return out, nil
}

// MarkReceived flips PENDING to COMPLETED. The status guard lives in
// the statement; losing a race surfaces as a not-found miss.
func (r *PurchaseRepo) MarkReceived(ctx context.Context, purchaseID id.ID, receivedAt time.Time) error {
	const sql = `
		UPDATE purchases
		SET status = $2, received_at = $3
		WHERE id = $1 AND status = $4`

	tag, err := r.db.GetQuerier(ctx).Exec(ctx, sql,
		purchaseID, purchases.StatusCompleted, receivedAt, purchases.StatusPending)
	if err != nil {
		return fmt.Errorf("mark received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase", purchaseID.String())
	}
	return nil
}
