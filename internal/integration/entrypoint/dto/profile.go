package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// UpdateProfileRequest represents the request body of a profile patch.
type UpdateProfileRequest struct {
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	SavingRate   *decimal.Decimal `json:"saving_rate,omitempty"`
	CurrencyCode *string          `json:"currency_code,omitempty" binding:"omitempty,len=3"`
	Timezone     *string          `json:"timezone,omitempty" binding:"omitempty,max=64"`
	Locale       *string          `json:"locale,omitempty" binding:"omitempty,max=16"`
	DisplayName  *string          `json:"display_name,omitempty" binding:"omitempty,max=120"`
}

// ToPatch converts the request to a domain patch.
func (r UpdateProfileRequest) ToPatch() entity.ProfilePatch {
	return entity.ProfilePatch{
		BaseSalary:   r.BaseSalary,
		SavingRate:   r.SavingRate,
		CurrencyCode: r.CurrencyCode,
		Timezone:     r.Timezone,
		Locale:       r.Locale,
		DisplayName:  r.DisplayName,
	}
}

// ProfileResponse represents the caller's profile.
type ProfileResponse struct {
	UserID       string      `json:"user_id"`
	BaseSalary   json.Number `json:"base_salary"`
	SavingRate   json.Number `json:"saving_rate"`
	CurrencyCode string      `json:"currency_code"`
	Timezone     string      `json:"timezone"`
	Locale       string      `json:"locale"`
	DisplayName  *string     `json:"display_name"`
}

// ToProfileResponse converts a domain Profile to its response DTO.
func ToProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:       p.UserID.String(),
		BaseSalary:   Money(p.BaseSalary),
		SavingRate:   Rate(p.SavingRate),
		CurrencyCode: p.CurrencyCode,
		Timezone:     p.Timezone,
		Locale:       p.Locale,
		DisplayName:  p.DisplayName,
	}
}
