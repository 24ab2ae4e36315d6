package dto

import (
	"encoding/json"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SummaryResponse represents the monthly summary.
type SummaryResponse struct {
	Month           string      `json:"month"`
	BaseSalary      json.Number `json:"base_salary"`
	SavingRate      json.Number `json:"saving_rate"`
	ExtraIncome     json.Number `json:"extra_income"`
	VariableExpense json.Number `json:"variable_expense"`
	FixedPaid       json.Number `json:"fixed_paid"`
	SavingTarget    json.Number `json:"saving_target"`
	Remaining       json.Number `json:"remaining"`
}

// ToSummaryResponse converts a summary to its response DTO.
func ToSummaryResponse(s *entity.MonthlySummary) SummaryResponse {
	return SummaryResponse{
		Month:           s.Month.String(),
		BaseSalary:      Money(s.BaseSalary),
		SavingRate:      Rate(s.SavingRate),
		ExtraIncome:     Money(s.ExtraIncome),
		VariableExpense: Money(s.VariableExpense),
		FixedPaid:       Money(s.FixedPaid),
		SavingTarget:    Money(s.SavingTarget),
		Remaining:       Money(s.Remaining),
	}
}

// CategoryTotalResponse is one (type, category) group.
type CategoryTotalResponse struct {
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Total    json.Number `json:"total"`
}

// DailyNetResponse is the net of one day.
type DailyNetResponse struct {
	Day string      `json:"day"`
	Net json.Number `json:"net"`
}

// AnalyticsResponse represents the monthly analytics.
type AnalyticsResponse struct {
	ByCategory []CategoryTotalResponse `json:"byCategory"`
	DailyNet   []DailyNetResponse      `json:"dailyNet"`
}

// ToAnalyticsResponse converts analytics to its response DTO.
func ToAnalyticsResponse(a *entity.MonthlyAnalytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		ByCategory: make([]CategoryTotalResponse, len(a.ByCategory)),
		DailyNet:   make([]DailyNetResponse, len(a.DailyNet)),
	}
	for i, g := range a.ByCategory {
		resp.ByCategory[i] = CategoryTotalResponse{
			Type:     string(g.Type),
			Category: g.Category,
			Total:    Money(g.Total),
		}
	}
	for i, d := range a.DailyNet {
		resp.DailyNet[i] = DailyNetResponse{Day: d.Day, Net: Money(d.Net)}
	}
	return resp
}
