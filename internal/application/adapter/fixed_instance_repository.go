package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// FixedInstanceRepository defines the interface for instance persistence operations.
type FixedInstanceRepository interface {
	// MaterializedTemplateIDs returns the template ids that already have an
	// instance for the month, deleted ones included.
	MaterializedTemplateIDs(ctx context.Context, userID uuid.UUID, month valueobject.Month) (map[int64]struct{}, error)

	// InsertIfAbsent inserts the instance unless the (template_id, month_date)
	// uniqueness constraint already holds a live row. It reports false when
	// the insert lost to a concurrent writer.
	InsertIfAbsent(ctx context.Context, instance *entity.FixedInstance) (bool, error)

	// ListByMonth returns live instances for the month, newest id first.
	ListByMonth(ctx context.Context, userID uuid.UUID, month valueobject.Month) ([]*entity.FixedInstance, error)

	// SetPaid sets is_paid on a live instance owned by userID and returns it.
	SetPaid(ctx context.Context, userID uuid.UUID, id int64, paid bool) (*entity.FixedInstance, error)

	// SoftDelete tombstones a live instance owned by userID.
	SoftDelete(ctx context.Context, userID uuid.UUID, id int64) error
}
