package entity

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// UncategorizedName labels transactions whose category is missing or unresolved.
const UncategorizedName = "uncategorized"

// MonthlySummary is the derived financial picture of one user for one month.
type MonthlySummary struct {
	Month           valueobject.Month
	BaseSalary      decimal.Decimal
	SavingRate      decimal.Decimal
	ExtraIncome     decimal.Decimal
	VariableExpense decimal.Decimal
	FixedPaid       decimal.Decimal
	SavingTarget    decimal.Decimal
	Remaining       decimal.Decimal
}

// CategoryTotal is the summed amount of one (type, category name) group.
type CategoryTotal struct {
	Type     TransactionType
	Category string
	Total    decimal.Decimal
}

// DailyNet is income minus expense for one calendar day.
type DailyNet struct {
	Day string
	Net decimal.Decimal
}

// MonthlyAnalytics groups a month's transactions by category and by day.
type MonthlyAnalytics struct {
	Month      valueobject.Month
	ByCategory []CategoryTotal
	DailyNet   []DailyNet
}
