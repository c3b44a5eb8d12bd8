package dto

import (
	"time"

	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
	"shopledger/internal/domain/purchases"
	"shopledger/internal/domain/sales"
)

// --- Sales ---

// SaleItemRequest is one requested sale line.
type SaleItemRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int64       `json:"quantity" binding:"required,min=1"`
	UnitPrice types.Money `json:"unitPrice"`
	Discount  types.Money `json:"discount"`
}

// CreateSaleRequest submits a sale.
type CreateSaleRequest struct {
	ShopID        string            `json:"shopId" binding:"required"`
	CustomerID    string            `json:"customerId"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// ToInput converts the request to domain input. The cashier is the
// authenticated caller.
func (r CreateSaleRequest) ToInput(cashierID id.ID) (sales.CreateSaleInput, error) {
	shopID, err := ParseID("shopId", r.ShopID)
	if err != nil {
		return sales.CreateSaleInput{}, err
	}
	customerID, err := ParseOptionalID("customerId", r.CustomerID)
	if err != nil {
		return sales.CreateSaleInput{}, err
	}

	in := sales.CreateSaleInput{
		ShopID:        shopID,
		CustomerID:    customerID,
		CashierID:     cashierID,
		PaymentMethod: sales.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
		Items:         make([]sales.CreateItemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		productID, err := ParseID("productId", item.ProductID)
		if err != nil {
			return in, err
		}
		in.Items = append(in.Items, sales.CreateItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}
	return in, nil
}

// SaleListParams filters sale listings.
type SaleListParams struct {
	ShopID     string     `form:"shopId"`
	CustomerID string     `form:"customerId"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	PageParams
}

// ToFilter converts query parameters to a domain filter.
func (p SaleListParams) ToFilter() (sales.Filter, error) {
	p.Normalize()
	f := sales.Filter{From: p.From, To: p.To, Limit: p.Limit, Offset: p.Offset}

	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID

	customerID, err := ParseOptionalID("customerId", p.CustomerID)
	if err != nil {
		return f, err
	}
	f.CustomerID = customerID
	return f, nil
}

// --- Purchases ---

// PurchaseItemRequest is one requested purchase line.
type PurchaseItemRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Quantity  int64       `json:"quantity" binding:"required,min=1"`
	UnitPrice types.Money `json:"unitPrice"`
	Discount  types.Money `json:"discount"`
}

// CreatePurchaseRequest submits a purchase order.
type CreatePurchaseRequest struct {
	ShopID       string                `json:"shopId" binding:"required"`
	SupplierID   string                `json:"supplierId" binding:"required"`
	Notes        string                `json:"notes"`
	DeliveryDate *time.Time            `json:"deliveryDate"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1"`
}

// ToInput converts the request to domain input.
func (r CreatePurchaseRequest) ToInput(createdBy id.ID) (purchases.CreatePurchaseInput, error) {
	shopID, err := ParseID("shopId", r.ShopID)
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}
	supplierID, err := ParseID("supplierId", r.SupplierID)
	if err != nil {
		return purchases.CreatePurchaseInput{}, err
	}

	in := purchases.CreatePurchaseInput{
		ShopID:       shopID,
		SupplierID:   supplierID,
		CreatedBy:    createdBy,
		Notes:        r.Notes,
		DeliveryDate: r.DeliveryDate,
		Items:        make([]purchases.CreateItemInput, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		productID, err := ParseID("productId", item.ProductID)
		if err != nil {
			return in, err
		}
		in.Items = append(in.Items, purchases.CreateItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}
	return in, nil
}

// PurchaseListParams filters purchase listings.
type PurchaseListParams struct {
	ShopID     string     `form:"shopId"`
	SupplierID string     `form:"supplierId"`
	Status     string     `form:"status"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	PageParams
}

// ToFilter converts query parameters to a domain filter.
func (p PurchaseListParams) ToFilter() (purchases.Filter, error) {
	p.Normalize()
	f := purchases.Filter{From: p.From, To: p.To, Limit: p.Limit, Offset: p.Offset}

	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID

	supplierID, err := ParseOptionalID("supplierId", p.SupplierID)
	if err != nil {
		return f, err
	}
	f.SupplierID = supplierID

	if p.Status != "" {
		status := purchases.Status(p.Status)
		f.Status = &status
	}
	return f, nil
}
