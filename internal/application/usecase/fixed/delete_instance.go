package fixed

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeleteInstanceInput represents the input for removing an instance from its month.
type DeleteInstanceInput struct {
	UserID     uuid.UUID
	InstanceID int64
}

// DeleteInstanceUseCase soft-deletes an instance. The tombstone keeps the
// template from being materialized again for that month.
type DeleteInstanceUseCase struct {
	instanceRepo adapter.FixedInstanceRepository
	metrics      adapter.LedgerMetrics
}

// NewDeleteInstanceUseCase creates a new DeleteInstanceUseCase instance.
func NewDeleteInstanceUseCase(instanceRepo adapter.FixedInstanceRepository, metrics adapter.LedgerMetrics) *DeleteInstanceUseCase {
	if metrics == nil {
		metrics = adapter.NopLedgerMetrics{}
	}
	return &DeleteInstanceUseCase{
		instanceRepo: instanceRepo,
		metrics:      metrics,
	}
}

// Execute tombstones the caller's live instance. Deleting a missing, foreign
// or already deleted instance reports not found.
func (uc *DeleteInstanceUseCase) Execute(ctx context.Context, input DeleteInstanceInput) error {
	if err := uc.instanceRepo.SoftDelete(ctx, input.UserID, input.InstanceID); err != nil {
		if errors.Is(err, domainerror.ErrFixedInstanceNotFound) {
			return instanceNotFound()
		}
		return err
	}

	uc.metrics.ObserveObligationChange("delete")
	slog.InfoContext(ctx, "Fixed instance deleted for month",
		"user_id", input.UserID,
		"instance_id", input.InstanceID,
	)
	return nil
}
