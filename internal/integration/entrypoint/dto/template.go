package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/template"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateTemplateRequest represents the request body for template creation.
// Amount accepts a JSON number or a numeric string.
type CreateTemplateRequest struct {
	Name       string           `json:"name"`
	Amount     *decimal.Decimal `json:"amount"`
	CategoryID *int64           `json:"category_id,omitempty"`
	DueDay     *int             `json:"due_day,omitempty"`
}

// UpdateTemplateRequest represents the request body for a template patch.
// An explicit null on category_id or due_day clears the field.
type UpdateTemplateRequest struct {
	Name       *string          `json:"name,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	CategoryID Nullable[int64]  `json:"category_id"`
	DueDay     Nullable[int]    `json:"due_day"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateTemplateRequest) ToPatch() entity.FixedTemplatePatch {
	return entity.FixedTemplatePatch{
		Name:            r.Name,
		Amount:          r.Amount,
		CategoryID:      r.CategoryID.Value,
		DueDay:          r.DueDay.Value,
		ClearCategoryID: r.CategoryID.IsNull(),
		ClearDueDay:     r.DueDay.IsNull(),
	}
}

// TemplateResponse represents a fixed template in API responses.
type TemplateResponse struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Amount     json.Number `json:"amount"`
	CategoryID *int64      `json:"category_id"`
	DueDay     *int        `json:"due_day"`
	IsActive   bool        `json:"is_active"`
}

// ToTemplateResponse converts a template output to its response DTO.
func ToTemplateResponse(t *template.TemplateOutput) TemplateResponse {
	return TemplateResponse{
		ID:         t.ID,
		Name:       t.Name,
		Amount:     Money(t.Amount),
		CategoryID: t.CategoryID,
		DueDay:     t.DueDay,
		IsActive:   t.IsActive,
	}
}

// ToTemplateListResponse converts a list of templates.
func ToTemplateListResponse(templates []*template.TemplateOutput) []TemplateResponse {
	out := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		out[i] = ToTemplateResponse(t)
	}
	return out
}
