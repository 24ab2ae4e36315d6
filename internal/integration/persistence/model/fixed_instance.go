package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// FixedSnapshotColumns holds the frozen template values of an instance.
type FixedSnapshotColumns struct {
	Name   string          `gorm:"column:name_snapshot;type:varchar(120);not null"`
	Amount decimal.Decimal `gorm:"column:amount_snapshot;type:decimal(15,2);not null"`
	DueDay *int            `gorm:"column:due_day_snapshot;type:smallint"`
}

// FixedInstanceModel represents the fixed_instances table in the database.
// The partial unique index allows at most one live row per template and month.
type FixedInstanceModel struct {
	ID         int64                `gorm:"primaryKey;autoIncrement"`
	TemplateID int64                `gorm:"not null;uniqueIndex:idx_fixed_instances_template_month,where:deleted_at IS NULL"`
	UserID     uuid.UUID            `gorm:"type:uuid;not null;index:idx_fixed_instances_user_month,priority:1"`
	MonthDate  valueobject.Month    `gorm:"not null;uniqueIndex:idx_fixed_instances_template_month,where:deleted_at IS NULL;index:idx_fixed_instances_user_month,priority:2"`
	Snapshot   FixedSnapshotColumns `gorm:"embedded"`
	IsPaid     bool                 `gorm:"not null"`
	CreatedAt  time.Time            `gorm:"not null"`
	UpdatedAt  time.Time            `gorm:"not null"`
	DeletedAt  gorm.DeletedAt       `gorm:"index"`
}

// TableName returns the table name for the FixedInstanceModel.
func (FixedInstanceModel) TableName() string {
	return "fixed_instances"
}

// ToEntity converts a FixedInstanceModel to a domain FixedInstance entity.
func (m *FixedInstanceModel) ToEntity() *entity.FixedInstance {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.FixedInstance{
		ID:         m.ID,
		TemplateID: m.TemplateID,
		UserID:     m.UserID,
		MonthDate:  m.MonthDate,
		Snapshot: entity.FixedSnapshot{
			Name:   m.Snapshot.Name,
			Amount: m.Snapshot.Amount,
			DueDay: m.Snapshot.DueDay,
		},
		IsPaid:    m.IsPaid,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// FixedInstanceFromEntity creates a FixedInstanceModel from a domain FixedInstance entity.
func FixedInstanceFromEntity(instance *entity.FixedInstance) *FixedInstanceModel {
	var deletedAt gorm.DeletedAt
	if instance.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *instance.DeletedAt, Valid: true}
	}

	return &FixedInstanceModel{
		ID:         instance.ID,
		TemplateID: instance.TemplateID,
		UserID:     instance.UserID,
		MonthDate:  instance.MonthDate,
		Snapshot: FixedSnapshotColumns{
			Name:   instance.Snapshot.Name,
			Amount: instance.Snapshot.Amount,
			DueDay: instance.Snapshot.DueDay,
		},
		IsPaid:    instance.IsPaid,
		CreatedAt: instance.CreatedAt,
		UpdatedAt: instance.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
