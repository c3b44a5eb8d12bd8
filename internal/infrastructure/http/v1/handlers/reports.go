package handlers

import (
	"github.com/gin-gonic/gin"

	"shopledger/internal/domain/reports"
	"shopledger/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves financial and operational reports.
type ReportsHandler struct {
	Base
	service *reports.Service
}

// NewReportsHandler creates the handler.
func NewReportsHandler(service *reports.Service) *ReportsHandler {
	return &ReportsHandler{service: service}
}

// ProfitLoss returns revenue against cost of goods for a period.
// GET /reports/profit-loss
func (h *ReportsHandler) ProfitLoss(c *gin.Context) {
	var params dto.ReportPeriodParams
	if !h.BindQuery(c, &params) {
		return
	}
	filter, err := params.ToProfitLossFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetProfitLoss(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// CashFlow breaks sales inflow down by payment method.
// GET /reports/cash-flow
func (h *ReportsHandler) CashFlow(c *gin.Context) {
	var params dto.ReportPeriodParams
	if !h.BindQuery(c, &params) {
		return
	}
	filter, err := params.ToCashFlowFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.GetCashFlow(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// Dashboard returns the operational snapshot for today.
// GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	var params dto.DashboardParams
	if !h.BindQuery(c, &params) {
		return
	}
	filter, err := params.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	snapshot, err := h.service.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, snapshot)
}
