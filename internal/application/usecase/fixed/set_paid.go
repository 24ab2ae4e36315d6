package fixed

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// SetPaidInput represents the input for paying or unpaying an instance.
type SetPaidInput struct {
	UserID     uuid.UUID
	InstanceID int64
	Paid       bool
}

// SetPaidOutput represents the instance after the change.
type SetPaidOutput struct {
	Instance *InstanceOutput
}

// SetPaidUseCase toggles the payment state of an instance. Only is_paid
// changes; the snapshot stays as materialized.
type SetPaidUseCase struct {
	instanceRepo adapter.FixedInstanceRepository
	metrics      adapter.LedgerMetrics
}

// NewSetPaidUseCase creates a new SetPaidUseCase instance.
func NewSetPaidUseCase(instanceRepo adapter.FixedInstanceRepository, metrics adapter.LedgerMetrics) *SetPaidUseCase {
	if metrics == nil {
		metrics = adapter.NopLedgerMetrics{}
	}
	return &SetPaidUseCase{
		instanceRepo: instanceRepo,
		metrics:      metrics,
	}
}

// Execute sets is_paid on the caller's live instance.
func (uc *SetPaidUseCase) Execute(ctx context.Context, input SetPaidInput) (*SetPaidOutput, error) {
	instance, err := uc.instanceRepo.SetPaid(ctx, input.UserID, input.InstanceID, input.Paid)
	if err != nil {
		if errors.Is(err, domainerror.ErrFixedInstanceNotFound) {
			return nil, instanceNotFound()
		}
		return nil, err
	}

	action := "unpay"
	if input.Paid {
		action = "pay"
	}
	uc.metrics.ObserveObligationChange(action)
	slog.InfoContext(ctx, "Fixed instance payment changed",
		"user_id", input.UserID,
		"instance_id", input.InstanceID,
		"is_paid", input.Paid,
	)

	return &SetPaidOutput{Instance: toInstanceOutput(instance)}, nil
}
