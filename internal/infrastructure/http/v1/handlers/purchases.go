package handlers

import (
	"github.com/gin-gonic/gin"

	"shopledger/internal/domain/purchases"
	"shopledger/internal/infrastructure/http/v1/dto"
)

// PurchasesHandler serves purchase orders.
type PurchasesHandler struct {
	Base
	service *purchases.Service
}

// NewPurchasesHandler creates the handler.
func NewPurchasesHandler(service *purchases.Service) *PurchasesHandler {
	return &PurchasesHandler{service: service}
}

// Create submits a purchase order in the pending state.
// POST /purchases
func (h *PurchasesHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	createdBy, ok := h.CallerID(c)
	if !ok {
		return
	}
	in, err := req.ToInput(createdBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, purchase)
}

// Receive marks the delivery as received, posting stock in the same
// transaction.
// POST /purchases/:id/receive
func (h *PurchasesHandler) Receive(c *gin.Context) {
	purchaseID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}

	purchase, err := h.service.Receive(c.Request.Context(), purchaseID, actorID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, purchase)
}

// Get returns a purchase with its lines.
// GET /purchases/:id
func (h *PurchasesHandler) Get(c *gin.Context) {
	purchaseID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	purchase, err := h.service.Get(c.Request.Context(), purchaseID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, purchase)
}

// List returns purchase headers.
// GET /purchases
func (h *PurchasesHandler) List(c *gin.Context) {
	var params dto.PurchaseListParams
	if !h.BindQuery(c, &params) {
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, Limit: filter.Limit, Offset: filter.Offset})
}
