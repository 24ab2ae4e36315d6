package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ProfileModel represents the profiles table in the database.
type ProfileModel struct {
	UserID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BaseSalary   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SavingRate   decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	CurrencyCode string          `gorm:"type:varchar(3);not null"`
	Timezone     string          `gorm:"type:varchar(64);not null"`
	Locale       string          `gorm:"type:varchar(16);not null"`
	DisplayName  *string         `gorm:"type:varchar(120)"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	return &entity.Profile{
		UserID:       m.UserID,
		BaseSalary:   m.BaseSalary,
		SavingRate:   m.SavingRate,
		CurrencyCode: m.CurrencyCode,
		Timezone:     m.Timezone,
		Locale:       m.Locale,
		DisplayName:  m.DisplayName,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileFromEntity(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:       profile.UserID,
		BaseSalary:   profile.BaseSalary,
		SavingRate:   profile.SavingRate,
		CurrencyCode: profile.CurrencyCode,
		Timezone:     profile.Timezone,
		Locale:       profile.Locale,
		DisplayName:  profile.DisplayName,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}
