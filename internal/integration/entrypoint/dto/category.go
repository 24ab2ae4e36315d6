package dto

import "github.com/finance-tracker/ledger/internal/domain/entity"

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsGlobal bool   `json:"is_global"`
}

// ToCategoryListResponse converts visible categories to response DTOs.
func ToCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{ID: c.ID, Name: c.Name, IsGlobal: c.IsGlobal()}
	}
	return out
}
