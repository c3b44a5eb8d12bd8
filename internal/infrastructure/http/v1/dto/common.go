// Package dto provides request and response shapes for the HTTP API.
package dto

import (
	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/domain"
)

// ListParams contains common catalog listing query parameters.
type ListParams struct {
	Search         string `form:"search"`
	IncludeDeleted bool   `form:"includeDeleted"`
	OrderBy        string `form:"orderBy"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset         int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts query parameters to a domain filter.
func (p ListParams) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = p.Search
	f.IncludeDeleted = p.IncludeDeleted
	if p.OrderBy != "" {
		f.OrderBy = p.OrderBy
	}
	if p.Limit > 0 {
		f.Limit = p.Limit
	}
	f.Offset = p.Offset
	return f
}

// PageParams contains plain limit/offset paging.
type PageParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Normalize applies the default page size.
func (p *PageParams) Normalize() {
	if p.Limit == 0 {
		p.Limit = 50
	}
}

// ListResponse wraps list results.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Offset     int   `json:"offset,omitempty"`
}

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates an ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse documents the error body shape produced by the error
// middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ParseID parses a path or body id, mapping failure to a validation
// error carrying the field name.
func ParseID(field, raw string) (id.ID, error) {
	parsed, err := id.Parse(raw)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid id").WithDetail("field", field)
	}
	return parsed, nil
}

// ParseOptionalID parses an id when present, returning nil otherwise.
func ParseOptionalID(field, raw string) (*id.ID, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := ParseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
