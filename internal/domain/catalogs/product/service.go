package product

import (
	"context"

	"shopledger/internal/core/apperror"
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
	"shopledger/internal/domain"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a Product service.
func NewService(repo Repository, numbers corenum.Generator, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Numbers:    numbers,
		EntityName: "product",
		CodePrefix: "PRD",
	})

	svc := &Service{CatalogService: base, repo: repo}
	base.Hooks().OnBeforeCreate(svc.checkBarcodeUnique)
	return svc
}

// GetByBarcode resolves a barcode scan.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	p, err := s.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", barcode)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) checkBarcodeUnique(ctx context.Context, p *Product) error {
	if p.Barcode == "" {
		return nil
	}
	existing, err := s.repo.GetByBarcode(ctx, p.Barcode)
	if apperror.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return apperror.NewValidation("barcode already in use").
		WithDetail("barcode", p.Barcode).
		WithDetail("productId", existing.ID.String())
}
