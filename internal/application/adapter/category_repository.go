package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Every lookup is restricted to categories visible to userID: global ones and
// those the user owns.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindVisibleByID retrieves a visible category by id.
	FindVisibleByID(ctx context.Context, userID uuid.UUID, id int64) (*entity.Category, error)

	// FindGlobalByName returns the first global category with the given name, or nil.
	FindGlobalByName(ctx context.Context, name string) (*entity.Category, error)

	// FindOwnedByName returns the first category owned by userID with the given name, or nil.
	FindOwnedByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error)

	// ListVisible returns active visible categories, global ones first, by name.
	ListVisible(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// NamesByID resolves the names of the visible categories among ids.
	NamesByID(ctx context.Context, userID uuid.UUID, ids []int64) (map[int64]string, error)
}
