package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID     uuid.UUID
	Limit      int
	BeforeID   *int64
	From       *time.Time
	To         *time.Time
	CategoryID *int64
	Type       *entity.TransactionType
	Query      string
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction and assigns its id.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// List returns up to filter.Limit live transactions ordered by id descending.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// ListByMonth returns every live transaction of the user in the month.
	ListByMonth(ctx context.Context, userID uuid.UUID, month valueobject.Month) ([]*entity.Transaction, error)

	// SoftDelete tombstones a live transaction owned by userID.
	SoftDelete(ctx context.Context, userID uuid.UUID, id int64) error
}
