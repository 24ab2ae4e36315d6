// Package summary contains the monthly financial summary use case.
package summary

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// GetMonthlySummaryInput represents the input for the monthly summary.
type GetMonthlySummaryInput struct {
	UserID uuid.UUID
	Month  valueobject.Month
}

// GetMonthlySummaryOutput represents the computed summary.
type GetMonthlySummaryOutput struct {
	Summary *entity.MonthlySummary
}

// GetMonthlySummaryUseCase recomputes a user's monthly summary from the ledger.
type GetMonthlySummaryUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	instanceRepo    adapter.FixedInstanceRepository
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	instanceRepo adapter.FixedInstanceRepository,
) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		instanceRepo:    instanceRepo,
	}
}

// Execute loads the profile, the month's transactions and its instances
// concurrently and folds them into a summary. A missing profile yields the
// default salary and saving rate; it is not created here.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	var (
		profile      *entity.Profile
		transactions []*entity.Transaction
		instances    []*entity.FixedInstance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = uc.profileRepo.FindByUserID(gctx, input.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = uc.transactionRepo.ListByMonth(gctx, input.UserID, input.Month)
		return err
	})
	g.Go(func() error {
		var err error
		instances, err = uc.instanceRepo.ListByMonth(gctx, input.UserID, input.Month)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseSalary, savingRate := decimal.Zero, entity.DefaultSavingRate
	if profile != nil {
		baseSalary, savingRate = profile.BaseSalary, profile.SavingRate
	}

	return &GetMonthlySummaryOutput{
		Summary: ComputeSummary(input.Month, baseSalary, savingRate, transactions, instances),
	}, nil
}

// ComputeSummary folds a month's ledger into a MonthlySummary:
//
//	saving_target = (base_salary + extra_income) * saving_rate
//	remaining     = base_salary + extra_income - variable_expense - fixed_paid - saving_target
//
// Deleted rows are ignored even if the caller passes them in.
func ComputeSummary(
	month valueobject.Month,
	baseSalary, savingRate decimal.Decimal,
	transactions []*entity.Transaction,
	instances []*entity.FixedInstance,
) *entity.MonthlySummary {
	extraIncome, variableExpense, fixedPaid := decimal.Zero, decimal.Zero, decimal.Zero

	for _, t := range transactions {
		if t.DeletedAt != nil || t.MonthDate != month {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			extraIncome = extraIncome.Add(t.Amount)
		case entity.TransactionTypeExpense:
			variableExpense = variableExpense.Add(t.Amount)
		}
	}

	for _, i := range instances {
		if i.IsPaid && !i.IsDeleted() && i.MonthDate == month {
			fixedPaid = fixedPaid.Add(i.Snapshot.Amount)
		}
	}

	income := baseSalary.Add(extraIncome)
	savingTarget := income.Mul(savingRate)

	return &entity.MonthlySummary{
		Month:           month,
		BaseSalary:      baseSalary,
		SavingRate:      savingRate,
		ExtraIncome:     extraIncome,
		VariableExpense: variableExpense,
		FixedPaid:       fixedPaid,
		SavingTarget:    savingTarget,
		Remaining:       income.Sub(variableExpense).Sub(fixedPaid).Sub(savingTarget),
	}
}
