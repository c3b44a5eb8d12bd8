package handlers

import (
	"github.com/gin-gonic/gin"

	"shopledger/internal/domain/sales"
	"shopledger/internal/infrastructure/http/v1/dto"
)

// SalesHandler serves sale documents.
type SalesHandler struct {
	Base
	service *sales.Service
}

// NewSalesHandler creates the handler.
func NewSalesHandler(service *sales.Service) *SalesHandler {
	return &SalesHandler{service: service}
}

// Create submits a sale. The sale completes immediately and posts its
// stock effects in the same transaction.
// POST /sales
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	cashierID, ok := h.CallerID(c)
	if !ok {
		return
	}
	in, err := req.ToInput(cashierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	sale, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sale)
}

// Get returns a sale with its lines.
// GET /sales/:id
func (h *SalesHandler) Get(c *gin.Context) {
	saleID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	sale, err := h.service.Get(c.Request.Context(), saleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sale)
}

// List returns sale headers.
// GET /sales
func (h *SalesHandler) List(c *gin.Context) {
	var params dto.SaleListParams
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
