package dto

import (
	"time"

	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
	"shopledger/internal/domain/inventory"
)

// CreateRecordRequest creates an inventory record.
type CreateRecordRequest struct {
	ProductID       string      `json:"productId" binding:"required"`
	ShopID          string      `json:"shopId" binding:"required"`
	InitialQuantity int64       `json:"initialQuantity"`
	CostPrice       types.Money `json:"costPrice"`
	SellingPrice    types.Money `json:"sellingPrice"`
}

// ToInput converts the request to domain input.
func (r CreateRecordRequest) ToInput() (inventory.CreateRecordInput, error) {
	productID, err := ParseID("productId", r.ProductID)
	if err != nil {
		return inventory.CreateRecordInput{}, err
	}
	shopID, err := ParseID("shopId", r.ShopID)
	if err != nil {
		return inventory.CreateRecordInput{}, err
	}
	return inventory.CreateRecordInput{
		ProductID:       productID,
		ShopID:          shopID,
		InitialQuantity: r.InitialQuantity,
		CostPrice:       r.CostPrice,
		SellingPrice:    r.SellingPrice,
	}, nil
}

// MovementRequest applies a stock movement. Either the inventory record
// id comes from the path, or productId+shopId come from the body.
type MovementRequest struct {
	Type      string `json:"type" binding:"required"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
	ProductID string `json:"productId"`
	ShopID    string `json:"shopId"`
}

// ToInput converts the request to domain input. actorID comes from the
// authenticated caller.
func (r MovementRequest) ToInput(actorID id.ID) (inventory.MovementInput, error) {
	in := inventory.MovementInput{
		Type:      inventory.MovementType(r.Type),
		Quantity:  r.Quantity,
		Reason:    r.Reason,
		Reference: r.Reference,
		ActorID:   actorID,
	}
	if r.ProductID != "" {
		productID, err := ParseID("productId", r.ProductID)
		if err != nil {
			return in, err
		}
		in.ProductID = productID
	}
	if r.ShopID != "" {
		shopID, err := ParseID("shopId", r.ShopID)
		if err != nil {
			return in, err
		}
		in.ShopID = shopID
	}
	return in, nil
}

// UpdatePricesRequest changes record pricing.
type UpdatePricesRequest struct {
	CostPrice    types.Money `json:"costPrice"`
	SellingPrice types.Money `json:"sellingPrice"`
}

// TransferRequest moves stock between shops.
type TransferRequest struct {
	ProductID string `json:"productId" binding:"required"`
	FromShop  string `json:"fromShopId" binding:"required"`
	ToShop    string `json:"toShopId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
	Reason    string `json:"reason"`
}

// ToInput converts the request to domain input.
func (r TransferRequest) ToInput(actorID id.ID) (inventory.TransferInput, error) {
	productID, err := ParseID("productId", r.ProductID)
	if err != nil {
		return inventory.TransferInput{}, err
	}
	src, err := ParseID("fromShopId", r.FromShop)
	if err != nil {
		return inventory.TransferInput{}, err
	}
	dst, err := ParseID("toShopId", r.ToShop)
	if err != nil {
		return inventory.TransferInput{}, err
	}
	return inventory.TransferInput{
		ProductID: productID,
		SrcShopID: src,
		DstShopID: dst,
		Quantity:  r.Quantity,
		Reason:    r.Reason,
		ActorID:   actorID,
	}, nil
}

// RecordListParams filters inventory record listings.
type RecordListParams struct {
	ShopID        string `form:"shopId"`
	ProductID     string `form:"productId"`
	LowStock      bool   `form:"lowStock"`
	LowStockBelow int64  `form:"lowStockBelow" binding:"omitempty,min=1"`
	PageParams
}

// ToFilter converts query parameters to a domain filter.
func (p RecordListParams) ToFilter() (inventory.RecordFilter, error) {
	p.Normalize()
	f := inventory.RecordFilter{Limit: p.Limit, Offset: p.Offset}

	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID

	productID, err := ParseOptionalID("productId", p.ProductID)
	if err != nil {
		return f, err
	}
	f.ProductID = productID

	if p.LowStock || p.LowStockBelow > 0 {
		threshold := p.LowStockBelow
		if threshold == 0 {
			threshold = 10
		}
		f.LowStockBelow = &threshold
	}
	return f, nil
}

// MovementListParams filters ledger listings.
type MovementListParams struct {
	ProductID string     `form:"productId"`
	ShopID    string     `form:"shopId"`
	Type      string     `form:"type"`
	Reference string     `form:"reference"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	PageParams
}

// ToFilter converts query parameters to a domain filter.
func (p MovementListParams) ToFilter() (inventory.MovementFilter, error) {
	p.Normalize()
	f := inventory.MovementFilter{
		Reference: p.Reference,
		From:      p.From,
		To:        p.To,
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	productID, err := ParseOptionalID("productId", p.ProductID)
	if err != nil {
		return f, err
	}
	f.ProductID = productID

	shopID, err := ParseOptionalID("shopId", p.ShopID)
	if err != nil {
		return f, err
	}
	f.ShopID = shopID

	if p.Type != "" {
		mt := inventory.MovementType(p.Type)
		f.Type = &mt
	}
	return f, nil
}

// MovementResult pairs the ledger entry with the record state it
// produced.
type MovementResult struct {
	StockMovement *inventory.Movement `json:"stockMovement"`
	Inventory     *inventory.Record   `json:"inventory"`
}

// TransferResult carries both legs of a shop-to-shop transfer.
type TransferResult struct {
	Outgoing *inventory.Movement `json:"outgoing"`
	Incoming *inventory.Movement `json:"incoming"`
}
