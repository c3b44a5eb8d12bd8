package sales

import (
	"context"
	"time"

	"shopledger/internal/core/id"
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
	"shopledger/internal/core/types"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/domain/pricing"
	"shopledger/pkg/logger"
)

// StockApplier posts stock movements. Satisfied by the inventory service.
type StockApplier interface {
	ApplyMovement(ctx context.Context, in inventory.MovementInput) (*inventory.Movement, error)
}

// Service posts sale documents. A sale, its items, and the OUT movement
// for every line commit in a single transaction; an insufficient-stock
// failure on any line voids the whole document.
type Service struct {
	repo      Repository
	stock     StockApplier
	numbers   corenum.Generator
	txManager tx.Manager
}

// NewService constructs the sales service.
func NewService(repo Repository, stock StockApplier, numbers corenum.Generator, txManager tx.Manager) *Service {
	return &Service{repo: repo, stock: stock, numbers: numbers, txManager: txManager}
}

// Create posts a sale. The document is created COMPLETED: payment is
// taken at the till, so there is no pending state. Totals are computed
// server-side from the submitted lines; sales carry no tax, so the
// final amount equals the line total sum.
func (s *Service) Create(ctx context.Context, in CreateSaleInput) (*Sale, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	sale := &Sale{
		ID:            id.New(),
		ShopID:        in.ShopID,
		CustomerID:    in.CustomerID,
		CashierID:     in.CashierID,
		Status:        StatusCompleted,
		PaymentMethod: in.PaymentMethod,
		TaxAmount:     types.Zero(),
		Notes:         in.Notes,
		CreatedAt:     time.Now().UTC(),
	}

	lineTotals := make([]types.Money, 0, len(in.Items))
	for _, item := range in.Items {
		lt := pricing.LineTotal(item.UnitPrice, item.Quantity, item.Discount)
		lineTotals = append(lineTotals, lt)
		sale.Items = append(sale.Items, Item{
			ID:        id.New(),
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			LineTotal: lt,
		})
	}
	sale.TotalAmount = pricing.SumLines(lineTotals)
	sale.FinalAmount = sale.TotalAmount

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbers.Next(ctx, corenum.SaleConfig)
		if err != nil {
			return err
		}
		sale.Number = number

		if err := s.repo.Create(ctx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			if _, err := s.stock.ApplyMovement(ctx, inventory.MovementInput{
				Type:      inventory.MovementOut,
				Quantity:  item.Quantity,
				Reason:    "Sale",
				Reference: sale.ID.String(),
				ProductID: item.ProductID,
				ShopID:    sale.ShopID,
				ActorID:   in.CashierID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale posted",
		"sale_id", sale.ID, "number", sale.Number, "shop_id", sale.ShopID,
		"items", len(sale.Items), "final_amount", sale.FinalAmount)
	return sale, nil
}

// Get returns a sale with its items.
func (s *Service) Get(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, saleID)
}

// List returns sales matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Sale, error) {
	return s.repo.List(ctx, filter)
}
