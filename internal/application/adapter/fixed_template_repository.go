package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// FixedTemplateRepository defines the interface for template persistence operations.
type FixedTemplateRepository interface {
	// Create creates a new template and assigns its id.
	Create(ctx context.Context, template *entity.FixedTemplate) error

	// FindOwnedByID retrieves a template owned by userID.
	FindOwnedByID(ctx context.Context, userID uuid.UUID, id int64) (*entity.FixedTemplate, error)

	// ListActive returns the user's active templates ordered by name.
	ListActive(ctx context.Context, userID uuid.UUID) ([]*entity.FixedTemplate, error)

	// Update writes the template's mutable fields.
	Update(ctx context.Context, template *entity.FixedTemplate) error

	// Deactivate clears is_active on a template owned by userID.
	Deactivate(ctx context.Context, userID uuid.UUID, id int64) error
}
