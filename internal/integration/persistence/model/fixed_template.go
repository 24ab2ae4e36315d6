package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// FixedTemplateModel represents the fixed_templates table in the database.
type FixedTemplateModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_fixed_templates_user_active,priority:1"`
	Name       string          `gorm:"type:varchar(120);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID *int64          `gorm:"index"`
	DueDay     *int            `gorm:"type:smallint"`
	IsActive   bool            `gorm:"not null;index:idx_fixed_templates_user_active,priority:2"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the FixedTemplateModel.
func (FixedTemplateModel) TableName() string {
	return "fixed_templates"
}

// ToEntity converts a FixedTemplateModel to a domain FixedTemplate entity.
func (m *FixedTemplateModel) ToEntity() *entity.FixedTemplate {
	return &entity.FixedTemplate{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Amount:     m.Amount,
		CategoryID: m.CategoryID,
		DueDay:     m.DueDay,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FixedTemplateFromEntity creates a FixedTemplateModel from a domain FixedTemplate entity.
func FixedTemplateFromEntity(template *entity.FixedTemplate) *FixedTemplateModel {
	return &FixedTemplateModel{
		ID:         template.ID,
		UserID:     template.UserID,
		Name:       template.Name,
		Amount:     template.Amount,
		CategoryID: template.CategoryID,
		DueDay:     template.DueDay,
		IsActive:   template.IsActive,
		CreatedAt:  template.CreatedAt,
		UpdatedAt:  template.UpdatedAt,
	}
}
