package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Profile defaults applied when a profile is created lazily.
const (
	DefaultCurrencyCode = "COP"
	DefaultTimezone     = "America/Bogota"
	DefaultLocale       = "es-CO"
)

// DefaultSavingRate is the saving rate of a fresh profile.
var DefaultSavingRate = decimal.RequireFromString("0.10")

// Profile holds the per-user salary and saving settings.
type Profile struct {
	UserID       uuid.UUID
	BaseSalary   decimal.Decimal
	SavingRate   decimal.Decimal
	CurrencyCode string
	Timezone     string
	Locale       string
	DisplayName  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDefaultProfile returns the profile a user gets on first access.
func NewDefaultProfile(userID uuid.UUID) *Profile {
	now := time.Now().UTC()
	return &Profile{
		UserID:       userID,
		BaseSalary:   decimal.Zero,
		SavingRate:   DefaultSavingRate,
		CurrencyCode: DefaultCurrencyCode,
		Timezone:     DefaultTimezone,
		Locale:       DefaultLocale,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ProfilePatch lists the profile fields a user may change. Nil means untouched.
type ProfilePatch struct {
	BaseSalary   *decimal.Decimal
	SavingRate   *decimal.Decimal
	CurrencyCode *string
	Timezone     *string
	Locale       *string
	DisplayName  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.BaseSalary == nil && p.SavingRate == nil && p.CurrencyCode == nil &&
		p.Timezone == nil && p.Locale == nil && p.DisplayName == nil
}
