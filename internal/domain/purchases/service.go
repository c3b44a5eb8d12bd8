package purchases

import (
	"context"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
	"shopledger/internal/core/types"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/domain/pricing"
	"shopledger/pkg/logger"
)

// Stock is the inventory surface a receipt needs: posting IN movements
// and creating records for products never stocked at the shop before.
type Stock interface {
	ApplyMovement(ctx context.Context, in inventory.MovementInput) (*inventory.Movement, error)
	GetByProductShop(ctx context.Context, productID, shopID id.ID) (*inventory.Record, error)
	CreateRecord(ctx context.Context, in inventory.CreateRecordInput) (*inventory.Record, error)
}

// Service posts purchase orders and receives deliveries. Ordering and
// receiving are separate atomic steps: creation has no inventory
// effect, receiving posts every line's IN movement and the status flip
// in one transaction.
type Service struct {
	repo      Repository
	stock     Stock
	numbers   corenum.Generator
	txManager tx.Manager
}

// NewService constructs the purchases service.
func NewService(repo Repository, stock Stock, numbers corenum.Generator, txManager tx.Manager) *Service {
	return &Service{repo: repo, stock: stock, numbers: numbers, txManager: txManager}
}

// Create posts a purchase order in PENDING state. Totals are computed
// server-side; VAT at the purchase rate is added on top of the line sum.
func (s *Service) Create(ctx context.Context, in CreatePurchaseInput) (*Purchase, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	p := &Purchase{
		ID:           id.New(),
		ShopID:       in.ShopID,
		SupplierID:   in.SupplierID,
		Status:       StatusPending,
		Notes:        in.Notes,
		DeliveryDate: in.DeliveryDate,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    time.Now().UTC(),
	}

	lineTotals := make([]types.Money, 0, len(in.Items))
	for _, item := range in.Items {
		lt := pricing.LineTotal(item.UnitPrice, item.Quantity, item.Discount)
		lineTotals = append(lineTotals, lt)
		p.Items = append(p.Items, Item{
			ID:         id.New(),
			PurchaseID: p.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Discount:   item.Discount,
			LineTotal:  lt,
		})
	}
	p.TotalAmount = pricing.SumLines(lineTotals)
	p.TaxAmount = pricing.VAT(p.TotalAmount, pricing.PurchaseVATRate)
	p.FinalAmount = p.TotalAmount.Add(p.TaxAmount)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbers.Next(ctx, corenum.PurchaseConfig)
		if err != nil {
			return err
		}
		p.Number = number
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase order created",
		"purchase_id", p.ID, "number", p.Number, "supplier_id", p.SupplierID,
		"final_amount", p.FinalAmount)
	return p, nil
}

// Receive books a delivery against a pending purchase. Every line posts
// an IN movement at the ordering shop; products never stocked there get
// a record created with the line's cost price. Only a PENDING purchase
// is receivable, and the whole receipt commits or rolls back together.
func (s *Service) Receive(ctx context.Context, purchaseID, actorID id.ID) (*Purchase, error) {
	var p *Purchase
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p.Status != StatusPending {
			return apperror.NewPurchaseNotReceivable(p.ID.String(), string(p.Status))
		}

		receivedAt := time.Now().UTC()
		if err := s.repo.MarkReceived(ctx, purchaseID, receivedAt); err != nil {
			// The guarded update missed after the status check above:
			// a concurrent receipt won the race.
			if apperror.IsNotFound(err) {
				return apperror.NewConcurrentModification("purchase", purchaseID.String())
			}
			return err
		}

		for _, item := range p.Items {
			if _, err := s.ensureRecord(ctx, item, p.ShopID); err != nil {
				return err
			}
			if _, err := s.stock.ApplyMovement(ctx, inventory.MovementInput{
				Type:      inventory.MovementIn,
				Quantity:  item.Quantity,
				Reason:    "Purchase received",
				Reference: p.ID.String(),
				ProductID: item.ProductID,
				ShopID:    p.ShopID,
				ActorID:   actorID,
			}); err != nil {
				return err
			}
		}

		p.Status = StatusCompleted
		p.ReceivedAt = &receivedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase received",
		"purchase_id", p.ID, "number", p.Number, "items", len(p.Items))
	return p, nil
}

// ensureRecord returns the shop's inventory record for the line's
// product, creating one at zero quantity when the product has never
// been stocked there.
func (s *Service) ensureRecord(ctx context.Context, item Item, shopID id.ID) (*inventory.Record, error) {
	rec, err := s.stock.GetByProductShop(ctx, item.ProductID, shopID)
	if err == nil {
		return rec, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}
	return s.stock.CreateRecord(ctx, inventory.CreateRecordInput{
		ProductID:    item.ProductID,
		ShopID:       shopID,
		CostPrice:    item.UnitPrice,
		SellingPrice: item.UnitPrice,
	})
}

// Get returns a purchase with its items.
func (s *Service) Get(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// List returns purchases matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Purchase, error) {
	return s.repo.List(ctx, filter)
}
