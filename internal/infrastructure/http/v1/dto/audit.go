package dto

import (
	"encoding/json"
	"time"

	"shopledger/internal/infrastructure/storage/postgres"
)

// AuditEntryResponse is one audit trail entry. Compressed payloads are
// already inflated by the audit service; only the JSON changes go out.
type AuditEntryResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	UserID     string          `json:"userId,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// FromAuditEntries converts service entries to the response shape.
func FromAuditEntries(entries []postgres.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:         e.ID.String(),
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			Action:     string(e.Action),
			UserID:     e.UserID,
			Changes:    e.Changes,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}

// AuditHistoryParams bounds an audit history listing.
type AuditHistoryParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// Normalize applies the default page size.
func (p *AuditHistoryParams) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
}
