package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"shopledger/internal/core/id"
	"shopledger/internal/domain"
	"shopledger/internal/domain/catalogs/customer"
	"shopledger/internal/domain/catalogs/product"
	"shopledger/internal/domain/catalogs/shop"
	"shopledger/internal/domain/catalogs/supplier"
	"shopledger/internal/infrastructure/http/v1/dto"
)

// catalogService is the generic surface shared by all catalog services.
type catalogService[T domain.CatalogEntity] interface {
	Create(ctx context.Context, ent T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Update(ctx context.Context, ent T) error
	Delete(ctx context.Context, entityID id.ID) error
	Restore(ctx context.Context, entityID id.ID) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
}

// CatalogsHandler serves CRUD for the reference catalogs.
type CatalogsHandler struct {
	Base
	products  *product.Service
	shops     *shop.Service
	suppliers *supplier.Service
	customers *customer.Service
}

// NewCatalogsHandler creates the handler.
func NewCatalogsHandler(
	products *product.Service,
	shops *shop.Service,
	suppliers *supplier.Service,
	customers *customer.Service,
) *CatalogsHandler {
	return &CatalogsHandler{
		products:  products,
		shops:     shops,
		suppliers: suppliers,
		customers: customers,
	}
}

// --- generic CRUD plumbing ---

func getCatalog[T domain.CatalogEntity](b Base, c *gin.Context, svc catalogService[T]) {
	entityID, ok := b.PathID(c, "id")
	if !ok {
		return
	}
	ent, err := svc.GetByID(c.Request.Context(), entityID)
	if err != nil {
		b.Error(c, err)
		return
	}
	b.OK(c, ent)
}

func listCatalog[T domain.CatalogEntity](b Base, c *gin.Context, svc catalogService[T]) {
	var params dto.ListParams
	if !b.BindQuery(c, &params) {
		return
	}
	result, err := svc.List(c.Request.Context(), params.ToFilter())
	if err != nil {
		b.Error(c, err)
		return
	}
	b.OK(c, result)
}

func deleteCatalog[T domain.CatalogEntity](b Base, c *gin.Context, svc catalogService[T]) {
	entityID, ok := b.PathID(c, "id")
	if !ok {
		return
	}
	if err := svc.Delete(c.Request.Context(), entityID); err != nil {
		b.Error(c, err)
		return
	}
	b.NoContent(c)
}

func restoreCatalog[T domain.CatalogEntity](b Base, c *gin.Context, svc catalogService[T]) {
	entityID, ok := b.PathID(c, "id")
	if !ok {
		return
	}
	if err := svc.Restore(c.Request.Context(), entityID); err != nil {
		b.Error(c, err)
		return
	}
	b.OK(c, dto.SuccessResponse{Success: true})
}

// --- products ---

func (h *CatalogsHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p := req.ToModel()
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p)
}

func (h *CatalogsHandler) UpdateProduct(c *gin.Context) {
	entityID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.products.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(p)
	if err := h.products.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

func (h *CatalogsHandler) GetProduct(c *gin.Context)     { getCatalog[*product.Product](h.Base, c, h.products) }
func (h *CatalogsHandler) ListProducts(c *gin.Context)   { listCatalog[*product.Product](h.Base, c, h.products) }
func (h *CatalogsHandler) DeleteProduct(c *gin.Context)  { deleteCatalog[*product.Product](h.Base, c, h.products) }
func (h *CatalogsHandler) RestoreProduct(c *gin.Context) { restoreCatalog[*product.Product](h.Base, c, h.products) }

// GetProductByBarcode resolves a till scan.
// GET /products/barcode/:barcode
func (h *CatalogsHandler) GetProductByBarcode(c *gin.Context) {
	p, err := h.products.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// --- shops ---

func (h *CatalogsHandler) CreateShop(c *gin.Context) {
	var req dto.ShopRequest
	if !h.BindJSON(c, &req) {
		return
	}
	s := req.ToModel()
	if err := h.shops.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s)
}

func (h *CatalogsHandler) UpdateShop(c *gin.Context) {
	entityID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req dto.ShopRequest
	if !h.BindJSON(c, &req) {
		return
	}
	s, err := h.shops.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(s)
	if err := h.shops.Update(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

func (h *CatalogsHandler) GetShop(c *gin.Context)     { getCatalog[*shop.Shop](h.Base, c, h.shops) }
func (h *CatalogsHandler) ListShops(c *gin.Context)   { listCatalog[*shop.Shop](h.Base, c, h.shops) }
func (h *CatalogsHandler) DeleteShop(c *gin.Context)  { deleteCatalog[*shop.Shop](h.Base, c, h.shops) }
func (h *CatalogsHandler) RestoreShop(c *gin.Context) { restoreCatalog[*shop.Shop](h.Base, c, h.shops) }

// --- suppliers ---

func (h *CatalogsHandler) CreateSupplier(c *gin.Context) {
	var req dto.SupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}
	s := req.ToModel()
	if err := h.suppliers.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s)
}

func (h *CatalogsHandler) UpdateSupplier(c *gin.Context) {
	entityID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req dto.SupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}
	s, err := h.suppliers.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(s)
	if err := h.suppliers.Update(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

func (h *CatalogsHandler) GetSupplier(c *gin.Context)     { getCatalog[*supplier.Supplier](h.Base, c, h.suppliers) }
func (h *CatalogsHandler) ListSuppliers(c *gin.Context)   { listCatalog[*supplier.Supplier](h.Base, c, h.suppliers) }
func (h *CatalogsHandler) DeleteSupplier(c *gin.Context)  { deleteCatalog[*supplier.Supplier](h.Base, c, h.suppliers) }
func (h *CatalogsHandler) RestoreSupplier(c *gin.Context) { restoreCatalog[*supplier.Supplier](h.Base, c, h.suppliers) }

// --- customers ---

func (h *CatalogsHandler) CreateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cust := req.ToModel()
	if err := h.customers.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, cust)
}

func (h *CatalogsHandler) UpdateCustomer(c *gin.Context) {
	entityID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req dto.CustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cust, err := h.customers.GetByID(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.Apply(cust)
	if err := h.customers.Update(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cust)
}

func (h *CatalogsHandler) GetCustomer(c *gin.Context)     { getCatalog[*customer.Customer](h.Base, c, h.customers) }
func (h *CatalogsHandler) ListCustomers(c *gin.Context)   { listCatalog[*customer.Customer](h.Base, c, h.customers) }
func (h *CatalogsHandler) DeleteCustomer(c *gin.Context)  { deleteCatalog[*customer.Customer](h.Base, c, h.customers) }
func (h *CatalogsHandler) RestoreCustomer(c *gin.Context) { restoreCatalog[*customer.Customer](h.Base, c, h.customers) }
