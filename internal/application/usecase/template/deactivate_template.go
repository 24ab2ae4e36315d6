package template

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DeactivateTemplateInput represents the input for deactivating a template.
type DeactivateTemplateInput struct {
	UserID     uuid.UUID
	TemplateID int64
}

// DeactivateTemplateUseCase stops a template from materializing in future
// months. The row is never removed and existing instances are untouched.
type DeactivateTemplateUseCase struct {
	templateRepo adapter.FixedTemplateRepository
}

// NewDeactivateTemplateUseCase creates a new DeactivateTemplateUseCase instance.
func NewDeactivateTemplateUseCase(templateRepo adapter.FixedTemplateRepository) *DeactivateTemplateUseCase {
	return &DeactivateTemplateUseCase{templateRepo: templateRepo}
}

// Execute deactivates the user's template.
func (uc *DeactivateTemplateUseCase) Execute(ctx context.Context, input DeactivateTemplateInput) error {
	if err := uc.templateRepo.Deactivate(ctx, input.UserID, input.TemplateID); err != nil {
		if errors.Is(err, domainerror.ErrTemplateNotFound) {
			return templateNotFound()
		}
		return err
	}

	slog.InfoContext(ctx, "Fixed template deactivated",
		"user_id", input.UserID,
		"template_id", input.TemplateID,
	)
	return nil
}
