// Package inventory_repo provides the PostgreSQL implementation of the
// inventory repository. Quantity changes are single conditional
// statements so concurrent writers cannot interleave a check with an
// update.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/infrastructure/storage/postgres"
)

const (
	recordsTable   = "inventory_records"
	movementsTable = "stock_movements"
)

var recordColumns = []string{
	"id", "product_id", "shop_id", "quantity", "reserved_qty",
	"cost_price", "selling_price", "last_updated",
}

var movementColumns = []string{
	"id", "movement_type", "quantity", "previous_qty", "new_qty",
	"reason", "reference", "product_id", "shop_id", "user_id", "created_at",
}

// Repo implements inventory.Repository.
type Repo struct {
	db      *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewRepo creates the repository bound to a transaction manager.
func NewRepo(db *postgres.TxManager) *Repo {
	return &Repo{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ inventory.Repository = (*Repo)(nil)

// Create inserts a record. The (product_id, shop_id) unique constraint
// turns a second record for the pair into a duplicate error.
func (r *Repo) Create(ctx context.Context, rec *inventory.Record) error {
	q := r.builder.Insert(recordsTable).
		Columns(recordColumns...).
		Values(rec.ID, rec.ProductID, rec.ShopID, rec.Quantity, rec.ReservedQty,
			rec.CostPrice, rec.SellingPrice, rec.LastUpdated)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicateRecord(rec.ProductID.String(), rec.ShopID.String())
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID retrieves a record by id.
func (r *Repo) GetByID(ctx context.Context, recordID id.ID) (*inventory.Record, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec inventory.Record
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory record", recordID.String())
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// GetByProductShop retrieves the record for a (product, shop) pair.
func (r *Repo) GetByProductShop(ctx context.Context, productID, shopID id.ID) (*inventory.Record, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		Where(squirrel.Eq{"product_id": productID, "shop_id": shopID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec inventory.Record
	if err := pgxscan.Get(ctx, r.db.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory record", productID.String())
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// List retrieves records matching the filter.
func (r *Repo) List(ctx context.Context, filter inventory.RecordFilter) ([]inventory.Record, error) {
	q := r.builder.Select(recordColumns...).
		From(recordsTable).
		OrderBy("last_updated DESC")

	if filter.ShopID != nil {
		q = q.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.LowStockBelow != nil {
		q = q.Where(squirrel.Lt{"quantity": *filter.LowStockBelow})
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

	var recs []inventory.Record
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &recs, sql, args...); err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	return recs, nil
}

// AdjustQuantity applies a signed delta in one statement. The WHERE
// guard refuses changes that would go below zero; RETURNING captures
// the quantity before and after in the same snapshot.
func (r *Repo) AdjustQuantity(ctx context.Context, recordID id.ID, delta int64) (int64, int64, error) {
	const sql = `
		UPDATE inventory_records
		SET quantity = quantity + $2, last_updated = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity - $2, quantity`

	var prev, current int64
	err := r.db.GetQuerier(ctx).QueryRow(ctx, sql, recordID, delta).Scan(&prev, &current)
	if err != nil {
		if pgxscan.NotFound(err) {
			return 0, 0, apperror.NewNotFound("inventory record", recordID.String())
		}
		return 0, 0, fmt.Errorf("adjust quantity: %w", err)
	}
	return prev, current, nil
}

// SetQuantity overwrites the quantity, locking the row to read the
// value being replaced.
func (r *Repo) SetQuantity(ctx context.Context, recordID id.ID, target int64) (int64, int64, error) {
	const sql = `
		UPDATE inventory_records t
		SET quantity = $2, last_updated = now()
		FROM (SELECT quantity AS prev FROM inventory_records WHERE id = $1 FOR UPDATE) old
		WHERE t.id = $1
		RETURNING old.prev, t.quantity`

	var prev, current int64
	err := r.db.GetQuerier(ctx).QueryRow(ctx, sql, recordID, target).Scan(&prev, &current)
	if err != nil {
		if pgxscan.NotFound(err) {
			return 0, 0, apperror.NewNotFound("inventory record", recordID.String())
		}
		return 0, 0, fmt.Errorf("set quantity: %w", err)
	}
	return prev, current, nil
}

// UpdatePrices updates pricing fields.
func (r *Repo) UpdatePrices(ctx context.Context, rec *inventory.Record) error {
	q := r.builder.Update(recordsTable).
		Set("cost_price", rec.CostPrice).
		Set("selling_price", rec.SellingPrice).
		Set("last_updated", rec.LastUpdated).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update prices: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("inventory record", rec.ID.String())
	}
	return nil
}

// Delete removes a record. The ledger keeps its movement history.
func (r *Repo) Delete(ctx context.Context, recordID id.ID) error {
	q := r.builder.Delete(recordsTable).Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("inventory record", recordID.String())
	}
	return nil
}

// InsertMovement appends a ledger entry. Movements are never updated
// or deleted.
func (r *Repo) InsertMovement(ctx context.Context, mv *inventory.Movement) error {
	q := r.builder.Insert(movementsTable).
		Columns(movementColumns...).
		Values(mv.ID, mv.Type, mv.Quantity, mv.PreviousQty, mv.NewQty,
			mv.Reason, mv.Reference, mv.ProductID, mv.ShopID, mv.UserID, mv.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListMovements retrieves ledger entries, newest first.
func (r *Repo) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	q := r.builder.Select(movementColumns...).
		From(movementsTable).
		OrderBy("created_at DESC")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.ShopID != nil {
		q = q.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"movement_type": *filter.Type})
	}
	if filter.Reference != "" {
		q = q.Where(squirrel.Eq{"reference": filter.Reference})
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

	var mvs []inventory.Movement
	if err := pgxscan.Select(ctx, r.db.GetQuerier(ctx), &mvs, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return mvs, nil
}
