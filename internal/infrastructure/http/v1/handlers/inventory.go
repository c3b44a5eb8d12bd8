package handlers

import (
	"github.com/gin-gonic/gin"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves inventory records, stock movements and
// transfers.
type InventoryHandler struct {
	Base
	service *inventory.Service
}

// NewInventoryHandler creates the handler.
func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// Create adds an inventory record.
// POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateRecordRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	rec, err := h.service.CreateRecord(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rec)
}

// List returns inventory records.
// GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	var params dto.RecordListParams
	if !h.BindQuery(c, &params) {
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: records, Limit: filter.Limit, Offset: filter.Offset})
}

// Get returns one record by id.
// GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	recordID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rec)
}

// UpdatePrices changes record pricing without touching quantity.
// PUT /inventory/:id/prices
func (h *InventoryHandler) UpdatePrices(c *gin.Context) {
	recordID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePricesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.UpdatePrices(c.Request.Context(), recordID, req.CostPrice, req.SellingPrice)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rec)
}

// Delete removes an inventory record.
// DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	recordID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), recordID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ApplyToRecord applies a movement addressed by record id.
// POST /inventory/:id/movements
func (h *InventoryHandler) ApplyToRecord(c *gin.Context) {
	recordID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), recordID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.applyMovement(c, rec.ProductID, rec.ShopID, true)
}

// Apply applies a movement addressed by product and shop. Reason is
// optional here; the record-addressed route requires it.
// POST /stock-movements
func (h *InventoryHandler) Apply(c *gin.Context) {
	h.applyMovement(c, id.Nil(), id.Nil(), false)
}

func (h *InventoryHandler) applyMovement(c *gin.Context, productID, shopID id.ID, requireReason bool) {
	var req dto.MovementRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if requireReason && req.Reason == "" {
		h.Error(c, apperror.NewValidation("reason is required").WithDetail("field", "reason"))
		return
	}
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}
	in, err := req.ToInput(actorID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if !id.IsNil(productID) {
		in.ProductID = productID
		in.ShopID = shopID
	}
	if id.IsNil(in.ProductID) || id.IsNil(in.ShopID) {
		h.Error(c, apperror.NewValidation("product and shop are required"))
		return
	}

	mv, err := h.service.ApplyMovement(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	rec, err := h.service.GetByProductShop(c.Request.Context(), in.ProductID, in.ShopID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.MovementResult{StockMovement: mv, Inventory: rec})
}

// ListMovements returns ledger entries.
// GET /stock-movements
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var params dto.MovementListParams
	if !h.BindQuery(c, &params) {
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	movements, err := h.service.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: movements, Limit: filter.Limit, Offset: filter.Offset})
}

// Transfer moves stock between shops.
// POST /inventory/transfers
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !h.BindJSON(c, &req) {
		return
	}
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}
	in, err := req.ToInput(actorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	out, inMv, err := h.service.Transfer(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.TransferResult{Outgoing: out, Incoming: inMv})
}
