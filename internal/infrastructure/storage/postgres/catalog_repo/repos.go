package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"shopledger/internal/core/apperror"
	"shopledger/internal/domain/catalogs/customer"
	"shopledger/internal/domain/catalogs/product"
	"shopledger/internal/domain/catalogs/shop"
	"shopledger/internal/domain/catalogs/supplier"
	"shopledger/internal/infrastructure/storage/postgres"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates the product repository.
func NewProductRepo(db *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(db, "products",
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} }),
	}
}

var _ product.Repository = (*ProductRepo)(nil)

// GetByBarcode resolves a barcode to a product.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	p := &product.Product{}

	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[product.Product]()...).
		From("products").
		Where(squirrel.Eq{"barcode": barcode, "deletion_mark": false}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("products", barcode)
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// ShopRepo implements shop.Repository.
type ShopRepo struct {
	*BaseCatalogRepo[*shop.Shop]
}

// NewShopRepo creates the shop repository.
func NewShopRepo(db *postgres.TxManager) *ShopRepo {
	return &ShopRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(db, "shops",
			postgres.ExtractDBColumns[shop.Shop](),
			func() *shop.Shop { return &shop.Shop{} }),
	}
}

var _ shop.Repository = (*ShopRepo)(nil)

// SupplierRepo implements supplier.Repository.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates the supplier repository.
func NewSupplierRepo(db *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(db, "suppliers",
			postgres.ExtractDBColumns[supplier.Supplier](),
			func() *supplier.Supplier { return &supplier.Supplier{} }),
	}
}

var _ supplier.Repository = (*SupplierRepo)(nil)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates the customer repository.
func NewCustomerRepo(db *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(db, "customers",
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} }),
	}
}

var _ customer.Repository = (*CustomerRepo)(nil)
