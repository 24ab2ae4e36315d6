package fixed

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// ListInstancesInput represents the input for listing a month's instances.
type ListInstancesInput struct {
	UserID uuid.UUID
	Month  valueobject.Month
}

// ListInstancesOutput represents the output of listing instances.
type ListInstancesOutput struct {
	Instances []*InstanceOutput
}

// ListInstancesUseCase lists the live instances of a month.
type ListInstancesUseCase struct {
	instanceRepo adapter.FixedInstanceRepository
}

// NewListInstancesUseCase creates a new ListInstancesUseCase instance.
func NewListInstancesUseCase(instanceRepo adapter.FixedInstanceRepository) *ListInstancesUseCase {
	return &ListInstancesUseCase{instanceRepo: instanceRepo}
}

// Execute returns the month's live instances, most recently created first.
func (uc *ListInstancesUseCase) Execute(ctx context.Context, input ListInstancesInput) (*ListInstancesOutput, error) {
	instances, err := uc.instanceRepo.ListByMonth(ctx, input.UserID, input.Month)
	if err != nil {
		return nil, err
	}

	output := &ListInstancesOutput{Instances: make([]*InstanceOutput, len(instances))}
	for i, instance := range instances {
		output.Instances[i] = toInstanceOutput(instance)
	}
	return output, nil
}
