package customer

import (
	corenum "shopledger/internal/core/numerator"
	"shopledger/internal/core/tx"
	"shopledger/internal/domain"
)

// Repository defines Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]
}

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
}

// NewService creates a Customer service.
func NewService(repo Repository, numbers corenum.Generator, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
			Repo:       repo,
			TxManager:  txManager,
			Numbers:    numbers,
			EntityName: "customer",
			CodePrefix: "CUS",
		}),
	}
}
