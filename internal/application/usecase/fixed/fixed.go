// Package fixed contains the fixed obligation use cases: monthly
// materialization of templates and the payment state of instances.
package fixed

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// InstanceOutput represents a fixed instance in use case results.
type InstanceOutput struct {
	ID         int64
	TemplateID int64
	MonthDate  valueobject.Month
	Name       string
	Amount     decimal.Decimal
	DueDay     *int
	IsPaid     bool
}

func toInstanceOutput(i *entity.FixedInstance) *InstanceOutput {
	return &InstanceOutput{
		ID:         i.ID,
		TemplateID: i.TemplateID,
		MonthDate:  i.MonthDate,
		Name:       i.Snapshot.Name,
		Amount:     i.Snapshot.Amount,
		DueDay:     i.Snapshot.DueDay,
		IsPaid:     i.IsPaid,
	}
}

func instanceNotFound() error {
	return domainerror.NewFixedError(
		domainerror.ErrCodeFixedInstanceNotFound,
		"fixed instance not found",
		domainerror.ErrFixedInstanceNotFound,
	)
}
