package dto

import (
	"encoding/json"

	"github.com/finance-tracker/ledger/internal/application/usecase/fixed"
)

// EnsureMonthResponse reports what an ensure run did.
type EnsureMonthResponse struct {
	Ensured   bool   `json:"ensured"`
	Month     string `json:"month"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"`
	Conflicts int    `json:"conflicts"`
}

// FixedInstanceResponse represents a fixed instance in API responses.
type FixedInstanceResponse struct {
	ID             int64       `json:"id"`
	TemplateID     int64       `json:"template_id"`
	MonthDate      string      `json:"month_date"`
	NameSnapshot   string      `json:"name_snapshot"`
	AmountSnapshot json.Number `json:"amount_snapshot"`
	DueDaySnapshot *int        `json:"due_day_snapshot"`
	IsPaid         bool        `json:"is_paid"`
}

// ToEnsureMonthResponse converts the ensure output to its response DTO.
func ToEnsureMonthResponse(month string, output *fixed.EnsureMonthOutput) EnsureMonthResponse {
	return EnsureMonthResponse{
		Ensured:   true,
		Month:     month,
		Created:   output.Created,
		Skipped:   output.Skipped,
		Conflicts: output.Conflicts,
	}
}

// ToFixedInstanceResponse converts an instance output to its response DTO.
func ToFixedInstanceResponse(i *fixed.InstanceOutput) FixedInstanceResponse {
	return FixedInstanceResponse{
		ID:             i.ID,
		TemplateID:     i.TemplateID,
		MonthDate:      i.MonthDate.String(),
		NameSnapshot:   i.Name,
		AmountSnapshot: Money(i.Amount),
		DueDaySnapshot: i.DueDay,
		IsPaid:         i.IsPaid,
	}
}

// ToFixedInstanceListResponse converts a list of instances. An empty month
// renders as an empty array.
func ToFixedInstanceListResponse(instances []*fixed.InstanceOutput) []FixedInstanceResponse {
	out := make([]FixedInstanceResponse, len(instances))
	for i, instance := range instances {
		out[i] = ToFixedInstanceResponse(instance)
	}
	return out
}
