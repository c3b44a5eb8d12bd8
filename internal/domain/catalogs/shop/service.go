package shop

import (
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
	"shopledger/internal/domain"
)

// Repository defines Shop persistence.
type Repository interface {
	domain.CatalogRepository[*Shop]
}

// Service provides business logic for the Shop catalog.
type Service struct {
	*domain.CatalogService[*Shop]
}

// NewService creates a Shop service.
func NewService(repo Repository, numbers corenum.Generator, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Shop]{
			Repo:       repo,
			TxManager:  txManager,
			Numbers:    numbers,
			EntityName: "shop",
			CodePrefix: "SHP",
		}),
	}
}
