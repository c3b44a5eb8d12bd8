package dto

import (
	"shopledger/internal/core/types"
	"shopledger/internal/domain/catalogs/customer"
	"shopledger/internal/domain/catalogs/product"
	"shopledger/internal/domain/catalogs/shop"
	"shopledger/internal/domain/catalogs/supplier"
)

// --- Products ---

// ProductRequest creates or updates a product. On update, zero-value
// fields overwrite; clients send the full representation.
type ProductRequest struct {
	Code         string      `json:"code"`
	Name         string      `json:"name" binding:"required"`
	SKU          string      `json:"sku"`
	Barcode      string      `json:"barcode"`
	Category     string      `json:"category"`
	Unit         string      `json:"unit" binding:"required"`
	DefaultPrice types.Money `json:"defaultPrice"`
	Description  string      `json:"description"`
	IsActive     *bool       `json:"isActive"`
}

// ToModel builds a new product from the request.
func (r ProductRequest) ToModel() *product.Product {
	p := product.NewProduct(r.Code, r.Name, product.Unit(r.Unit))
	r.apply(p)
	return p
}

// Apply overwrites an existing product's fields, preserving identity.
func (r ProductRequest) Apply(p *product.Product) {
	p.Name = r.Name
	if r.Code != "" {
		p.Code = r.Code
	}
	p.Unit = product.Unit(r.Unit)
	r.apply(p)
}

func (r ProductRequest) apply(p *product.Product) {
	p.SKU = r.SKU
	p.Barcode = r.Barcode
	p.Category = r.Category
	p.DefaultPrice = r.DefaultPrice
	p.Description = r.Description
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

// --- Shops ---

// ShopRequest creates or updates a shop.
type ShopRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"isActive"`
}

// ToModel builds a new shop from the request.
func (r ShopRequest) ToModel() *shop.Shop {
	s := shop.NewShop(r.Code, r.Name)
	r.apply(s)
	return s
}

// Apply overwrites an existing shop's fields.
func (r ShopRequest) Apply(s *shop.Shop) {
	s.Name = r.Name
	if r.Code != "" {
		s.Code = r.Code
	}
	r.apply(s)
}

func (r ShopRequest) apply(s *shop.Shop) {
	s.Address = r.Address
	s.Phone = r.Phone
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// --- Suppliers ---

// SupplierRequest creates or updates a supplier.
type SupplierRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	TaxID       string `json:"taxId"`
	IsActive    *bool  `json:"isActive"`
}

// ToModel builds a new supplier from the request.
func (r SupplierRequest) ToModel() *supplier.Supplier {
	s := supplier.NewSupplier(r.Code, r.Name)
	r.apply(s)
	return s
}

// Apply overwrites an existing supplier's fields.
func (r SupplierRequest) Apply(s *supplier.Supplier) {
	s.Name = r.Name
	if r.Code != "" {
		s.Code = r.Code
	}
	r.apply(s)
}

func (r SupplierRequest) apply(s *supplier.Supplier) {
	s.ContactName = r.ContactName
	s.Phone = r.Phone
	s.Email = r.Email
	s.Address = r.Address
	s.TaxID = r.TaxID
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// --- Customers ---

// CustomerRequest creates or updates a customer.
type CustomerRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LoyaltyPoints int64  `json:"loyaltyPoints"`
	IsActive      *bool  `json:"isActive"`
}

// ToModel builds a new customer from the request.
func (r CustomerRequest) ToModel() *customer.Customer {
	c := customer.NewCustomer(r.Code, r.Name)
	r.apply(c)
	return c
}

// Apply overwrites an existing customer's fields.
func (r CustomerRequest) Apply(c *customer.Customer) {
	c.Name = r.Name
	if r.Code != "" {
		c.Code = r.Code
	}
	r.apply(c)
}

func (r CustomerRequest) apply(c *customer.Customer) {
	c.Phone = r.Phone
	c.Email = r.Email
	c.LoyaltyPoints = r.LoyaltyPoints
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
}
