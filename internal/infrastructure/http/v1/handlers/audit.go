package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"shopledger/internal/core/id"
	"shopledger/internal/infrastructure/http/v1/dto"
	"shopledger/internal/infrastructure/storage/postgres"
)

// AuditHistory reads the audit trail. Satisfied by the postgres audit
// service.
type AuditHistory interface {
	GetEntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// AuditHandler exposes the audit trail for a single entity.
type AuditHandler struct {
	Base
	audit AuditHistory
}

// NewAuditHandler creates the handler.
func NewAuditHandler(audit AuditHistory) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// EntityHistory returns the change history of one entity, newest first.
// GET /audit/:entityType/:id
func (h *AuditHandler) EntityHistory(c *gin.Context) {
	entityID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var params dto.AuditHistoryParams
	if !h.BindQuery(c, &params) {
		return
	}
	params.Normalize()

	entries, err := h.audit.GetEntityHistory(c.Request.Context(), c.Param("entityType"), entityID, params.Limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: dto.FromAuditEntries(entries), Limit: params.Limit})
}
