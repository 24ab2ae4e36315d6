// Package analytics contains the monthly category and cash-flow analytics use case.
package analytics

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

const dayLayout = "2006-01-02"

// GetMonthlyAnalyticsInput represents the input for monthly analytics.
type GetMonthlyAnalyticsInput struct {
	UserID uuid.UUID
	Month  valueobject.Month
}

// GetMonthlyAnalyticsOutput represents the computed analytics.
type GetMonthlyAnalyticsOutput struct {
	Analytics *entity.MonthlyAnalytics
}

// GetMonthlyAnalyticsUseCase groups a month's transactions by category and by day.
type GetMonthlyAnalyticsUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetMonthlyAnalyticsUseCase creates a new GetMonthlyAnalyticsUseCase instance.
func NewGetMonthlyAnalyticsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetMonthlyAnalyticsUseCase {
	return &GetMonthlyAnalyticsUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute loads the month's transactions, resolves their category names and
// aggregates them.
func (uc *GetMonthlyAnalyticsUseCase) Execute(ctx context.Context, input GetMonthlyAnalyticsInput) (*GetMonthlyAnalyticsOutput, error) {
	transactions, err := uc.transactionRepo.ListByMonth(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}

	names, err := uc.categoryRepo.NamesByID(ctx, input.UserID, categoryIDs(transactions))
	if err != nil {
		return nil, err
	}

	return &GetMonthlyAnalyticsOutput{
		Analytics: Aggregate(input.Month, transactions, names),
	}, nil
}

func categoryIDs(transactions []*entity.Transaction) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, t := range transactions {
		if t.CategoryID == nil {
			continue
		}
		if _, ok := seen[*t.CategoryID]; !ok {
			seen[*t.CategoryID] = struct{}{}
			ids = append(ids, *t.CategoryID)
		}
	}
	return ids
}

type groupKey struct {
	txType   entity.TransactionType
	category string
}

// Aggregate groups transactions by (type, category name) and computes the
// net of each calendar day. Categories missing from names fall under
// entity.UncategorizedName. Groups are sorted by type then name and days
// ascending.
func Aggregate(month valueobject.Month, transactions []*entity.Transaction, names map[int64]string) *entity.MonthlyAnalytics {
	byCategory := make(map[groupKey]decimal.Decimal)
	daily := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.DeletedAt != nil || t.MonthDate != month {
			continue
		}

		name := entity.UncategorizedName
		if t.CategoryID != nil {
			if resolved, ok := names[*t.CategoryID]; ok {
				name = resolved
			}
		}
		key := groupKey{txType: t.Type, category: name}
		byCategory[key] = byCategory[key].Add(t.Amount)

		day := t.OccurredAt.Format(dayLayout)
		daily[day] = daily[day].Add(t.SignedAmount())
	}

	analytics := &entity.MonthlyAnalytics{
		Month:      month,
		ByCategory: make([]entity.CategoryTotal, 0, len(byCategory)),
		DailyNet:   make([]entity.DailyNet, 0, len(daily)),
	}
	for key, total := range byCategory {
		analytics.ByCategory = append(analytics.ByCategory, entity.CategoryTotal{
			Type:     key.txType,
			Category: key.category,
			Total:    total,
		})
	}
	sort.Slice(analytics.ByCategory, func(i, j int) bool {
		a, b := analytics.ByCategory[i], analytics.ByCategory[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Category < b.Category
	})

	for day, net := range daily {
		analytics.DailyNet = append(analytics.DailyNet, entity.DailyNet{Day: day, Net: net})
	}
	sort.Slice(analytics.DailyNet, func(i, j int) bool {
		return analytics.DailyNet[i].Day < analytics.DailyNet[j].Day
	})

	return analytics
}
