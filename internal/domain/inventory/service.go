package inventory

import (
	"context"
	"fmt"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/core/tx"
	"shopledger/internal/core/types"
	"shopledger/pkg/logger"
)

// Auditor records entity changes for the audit trail. Satisfied by the
// postgres audit service; a nil auditor disables auditing.
type Auditor interface {
	LogChange(ctx context.Context, action string, entityType string, entityID id.ID, payload any) error
}

// Service applies stock movements to inventory records and writes the
// ledger. Every mutation runs inside a transaction; when the caller has
// already opened one, the nested call joins it, so document postings and
// their stock effects commit or roll back together.
type Service struct {
	repo      Repository
	txManager tx.Manager
	auditor   Auditor
}

// NewService constructs the inventory service.
func NewService(repo Repository, txManager tx.Manager, auditor Auditor) *Service {
	return &Service{repo: repo, txManager: txManager, auditor: auditor}
}

// CreateRecord creates an inventory record for a (product, shop) pair.
// The pair is unique; a second record for the same pair is rejected.
func (s *Service) CreateRecord(ctx context.Context, in CreateRecordInput) (*Record, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	rec := &Record{
		ID:           id.New(),
		ProductID:    in.ProductID,
		ShopID:       in.ShopID,
		Quantity:     in.InitialQuantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		LastUpdated:  time.Now().UTC(),
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rec); err != nil {
			return err
		}
		return s.audit(ctx, "create", rec.ID, rec)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inventory record created",
		"record_id", rec.ID, "product_id", rec.ProductID, "shop_id", rec.ShopID)
	return rec, nil
}

// Get returns an inventory record by id.
func (s *Service) Get(ctx context.Context, recordID id.ID) (*Record, error) {
	return s.repo.GetByID(ctx, recordID)
}

// GetByProductShop returns the record for a (product, shop) pair.
func (s *Service) GetByProductShop(ctx context.Context, productID, shopID id.ID) (*Record, error) {
	return s.repo.GetByProductShop(ctx, productID, shopID)
}

// List returns inventory records matching the filter.
func (s *Service) List(ctx context.Context, filter RecordFilter) ([]Record, error) {
	return s.repo.List(ctx, filter)
}

// UpdatePrices updates cost and selling price on an existing record.
func (s *Service) UpdatePrices(ctx context.Context, recordID id.ID, costPrice, sellingPrice types.Money) (*Record, error) {
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, apperror.NewValidation("prices must not be negative")
	}
	var rec *Record
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		rec, err = s.repo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		rec.CostPrice = costPrice
		rec.SellingPrice = sellingPrice
		rec.LastUpdated = time.Now().UTC()
		if err := s.repo.UpdatePrices(ctx, rec); err != nil {
			return err
		}
		return s.audit(ctx, "update", rec.ID, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes an inventory record.
func (s *Service) Delete(ctx context.Context, recordID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.repo.GetByID(ctx, recordID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, recordID); err != nil {
			return err
		}
		return s.audit(ctx, "delete", rec.ID, rec)
	})
}

// ApplyMovement applies one stock movement to the record identified by
// (product, shop), writing the quantity change and the ledger entry in
// the same transaction. Removals that would drive the quantity negative
// fail with an insufficient-stock error and leave nothing behind.
//
// TRANSFER accepted here is the source-side decrement only; use Transfer
// for the paired two-shop operation.
func (s *Service) ApplyMovement(ctx context.Context, in MovementInput) (*Movement, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var mv *Movement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.repo.GetByProductShop(ctx, in.ProductID, in.ShopID)
		if err != nil {
			return err
		}
		mv, err = s.applyToRecord(ctx, rec, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock movement applied",
		"movement_id", mv.ID, "type", mv.Type, "product_id", mv.ProductID,
		"shop_id", mv.ShopID, "previous_qty", mv.PreviousQty, "new_qty", mv.NewQty)
	return mv, nil
}

// applyToRecord performs the quantity change and ledger insert for an
// already-loaded record. Must run inside a transaction.
func (s *Service) applyToRecord(ctx context.Context, rec *Record, in MovementInput) (*Movement, error) {
	var prev, current int64
	var err error

	if in.Type == MovementAdjustment {
		prev, current, err = s.repo.SetQuantity(ctx, rec.ID, in.Quantity)
	} else {
		prev, current, err = s.repo.AdjustQuantity(ctx, rec.ID, in.Type.Direction()*in.Quantity)
	}
	if err != nil {
		// The conditional update matches no row either because the
		// record vanished or because the guard refused a negative
		// result. The record was loaded in this same transaction, so
		// a miss here means insufficient stock.
		if apperror.IsNotFound(err) {
			return nil, apperror.NewInsufficientStock(rec.ProductID.String(), in.Quantity, rec.Quantity)
		}
		return nil, err
	}

	mv := &Movement{
		ID:          id.New(),
		Type:        in.Type,
		Quantity:    in.Quantity,
		PreviousQty: prev,
		NewQty:      current,
		Reason:      in.Reason,
		Reference:   in.Reference,
		ProductID:   rec.ProductID,
		ShopID:      rec.ShopID,
		UserID:      in.ActorID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.InsertMovement(ctx, mv); err != nil {
		return nil, err
	}
	if err := s.audit(ctx, "movement", mv.ID, mv); err != nil {
		return nil, err
	}
	return mv, nil
}

// Transfer moves stock between two shops as a paired OUT at the source
// and IN at the destination, committed atomically. The destination
// record is created on the fly when the product has never been stocked
// there, inheriting the source record's prices.
func (s *Service) Transfer(ctx context.Context, in TransferInput) (out, inMv *Movement, err error) {
	if err := in.Validate(ctx); err != nil {
		return nil, nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		src, err := s.repo.GetByProductShop(ctx, in.ProductID, in.SrcShopID)
		if err != nil {
			return err
		}

		dst, err := s.repo.GetByProductShop(ctx, in.ProductID, in.DstShopID)
		if apperror.IsNotFound(err) {
			dst = &Record{
				ID:           id.New(),
				ProductID:    in.ProductID,
				ShopID:       in.DstShopID,
				CostPrice:    src.CostPrice,
				SellingPrice: src.SellingPrice,
				LastUpdated:  time.Now().UTC(),
			}
			if err := s.repo.Create(ctx, dst); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		out, err = s.applyToRecord(ctx, src, MovementInput{
			Type:      MovementTransfer,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			Reference: fmt.Sprintf("transfer-to:%s", in.DstShopID),
			ProductID: in.ProductID,
			ShopID:    in.SrcShopID,
			ActorID:   in.ActorID,
		})
		if err != nil {
			return err
		}

		inMv, err = s.applyToRecord(ctx, dst, MovementInput{
			Type:      MovementIn,
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			Reference: fmt.Sprintf("transfer-from:%s", in.SrcShopID),
			ProductID: in.ProductID,
			ShopID:    in.DstShopID,
			ActorID:   in.ActorID,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info(ctx, "stock transferred",
		"product_id", in.ProductID, "src_shop_id", in.SrcShopID,
		"dst_shop_id", in.DstShopID, "quantity", in.Quantity)
	return out, inMv, nil
}

// ListMovements returns ledger entries matching the filter.
func (s *Service) ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	return s.repo.ListMovements(ctx, filter)
}

func (s *Service) audit(ctx context.Context, action string, entityID id.ID, payload any) error {
	if s.auditor == nil {
		return nil
	}
	return s.auditor.LogChange(ctx, action, "inventory", entityID, payload)
}
