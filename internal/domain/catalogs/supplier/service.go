package supplier

import (
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
	"shopledger/internal/domain"
)

// Repository defines Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]
}

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
}

// NewService creates a Supplier service.
func NewService(repo Repository, numbers corenum.Generator, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
			Repo:       repo,
			TxManager:  txManager,
			Numbers:    numbers,
			EntityName: "supplier",
			CodePrefix: "SUP",
		}),
	}
}
