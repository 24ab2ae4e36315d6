package fixed

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// EnsureMonthInput represents the input for materializing a month.
type EnsureMonthInput struct {
	UserID uuid.UUID
	Month  valueobject.Month
}

// EnsureMonthOutput counts what one ensure run did.
type EnsureMonthOutput struct {
	// Created is the number of instances inserted by this run.
	Created int
	// Skipped is the number of templates that already had an instance, live or deleted.
	Skipped int
	// Conflicts is the number of inserts lost to a concurrent run.
	Conflicts int
}

// EnsureMonthUseCase materializes every active template of a user into the
// month exactly once.
type EnsureMonthUseCase struct {
	templateRepo adapter.FixedTemplateRepository
	instanceRepo adapter.FixedInstanceRepository
	metrics      adapter.LedgerMetrics
}

// NewEnsureMonthUseCase creates a new EnsureMonthUseCase instance.
func NewEnsureMonthUseCase(
	templateRepo adapter.FixedTemplateRepository,
	instanceRepo adapter.FixedInstanceRepository,
	metrics adapter.LedgerMetrics,
) *EnsureMonthUseCase {
	if metrics == nil {
		metrics = adapter.NopLedgerMetrics{}
	}
	return &EnsureMonthUseCase{
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		metrics:      metrics,
	}
}

// Execute creates the missing instances of the month. A template whose
// instance was deleted for the month is not materialized again. Losing an
// insert race to a concurrent run counts as success.
func (uc *EnsureMonthUseCase) Execute(ctx context.Context, input EnsureMonthInput) (*EnsureMonthOutput, error) {
	templates, err := uc.templateRepo.ListActive(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &EnsureMonthOutput{}
	if len(templates) == 0 {
		return output, nil
	}

	materialized, err := uc.instanceRepo.MaterializedTemplateIDs(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}

	for _, template := range templates {
		if _, ok := materialized[template.ID]; ok {
			output.Skipped++
			continue
		}

		inserted, err := uc.instanceRepo.InsertIfAbsent(ctx, entity.NewFixedInstance(template, input.Month))
		if err != nil {
			return nil, err
		}
		if inserted {
			output.Created++
		} else {
			output.Conflicts++
		}
	}

	uc.metrics.ObserveEnsure(output.Created, output.Skipped, output.Conflicts)
	if output.Created > 0 || output.Conflicts > 0 {
		slog.InfoContext(ctx, "Fixed month ensured",
			"user_id", input.UserID,
			"month", input.Month.String(),
			"created", output.Created,
			"skipped", output.Skipped,
			"conflicts", output.Conflicts,
		)
	}

	return output, nil
}
