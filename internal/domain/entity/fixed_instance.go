package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// FixedSnapshot holds the template values copied when an instance is created.
// It is never written again afterwards.
type FixedSnapshot struct {
	Name   string
	Amount decimal.Decimal
	DueDay *int
}

// FixedInstance is one month's materialization of a FixedTemplate.
type FixedInstance struct {
	ID         int64
	TemplateID int64
	UserID     uuid.UUID
	MonthDate  valueobject.Month
	Snapshot   FixedSnapshot
	IsPaid     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// NewFixedInstance materializes template for month, unpaid.
func NewFixedInstance(template *FixedTemplate, month valueobject.Month) *FixedInstance {
	now := time.Now().UTC()
	return &FixedInstance{
		TemplateID: template.ID,
		UserID:     template.UserID,
		MonthDate:  month,
		Snapshot:   template.Snapshot(),
		IsPaid:     false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsDeleted reports whether the instance was removed for its month.
func (i *FixedInstance) IsDeleted() bool {
	return i.DeletedAt != nil
}
