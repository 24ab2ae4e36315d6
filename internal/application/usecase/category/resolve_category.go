package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for category names.
const MaxNameLength = 80

// Resolver turns a category reference given by id or by name into a visible category id.
type Resolver struct {
	categoryRepo adapter.CategoryRepository
}

// NewResolver creates a new category Resolver.
func NewResolver(categoryRepo adapter.CategoryRepository) *Resolver {
	return &Resolver{categoryRepo: categoryRepo}
}

// ByID returns id when the category is visible to the user.
func (r *Resolver) ByID(ctx context.Context, userID uuid.UUID, id int64) (int64, error) {
	category, err := r.categoryRepo.FindVisibleByID(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// ByName finds the first global category with the name, then the user's own,
// and creates a user-owned category when neither exists.
func (r *Resolver) ByName(ctx context.Context, userID uuid.UUID, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return 0, domainerror.ErrCategoryNameRequired
	}

	global, err := r.categoryRepo.FindGlobalByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if global != nil {
		return global.ID, nil
	}

	owned, err := r.categoryRepo.FindOwnedByName(ctx, userID, name)
	if err != nil {
		return 0, err
	}
	if owned != nil {
		return owned.ID, nil
	}

	created := entity.NewUserCategory(userID, name)
	if err := r.categoryRepo.Create(ctx, created); err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "Category created from name",
		"user_id", userID,
		"category_id", created.ID,
	)
	return created.ID, nil
}
