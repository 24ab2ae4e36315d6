package template

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// UpdateTemplateInput represents the input for a template update.
type UpdateTemplateInput struct {
	UserID     uuid.UUID
	TemplateID int64
	Patch      entity.FixedTemplatePatch
}

// UpdateTemplateOutput represents the output of a template update.
type UpdateTemplateOutput struct {
	Template *TemplateOutput
}

// UpdateTemplateUseCase edits a template. Instances already materialized keep
// their snapshot; only future months see the new values.
type UpdateTemplateUseCase struct {
	templateRepo adapter.FixedTemplateRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateTemplateUseCase creates a new UpdateTemplateUseCase instance.
func NewUpdateTemplateUseCase(
	templateRepo adapter.FixedTemplateRepository,
	categoryRepo adapter.CategoryRepository,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute validates the patch and applies it to the user's template.
func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, input UpdateTemplateInput) (*UpdateTemplateOutput, error) {
	patch := input.Patch
	if patch.IsEmpty() {
		return nil, domainerror.NewFixedError(
			domainerror.ErrCodeEmptyTemplatePatch,
			"nothing to update",
			domainerror.ErrEmptyTemplatePatch,
		)
	}
	if patch.Name != nil {
		name, err := validateName(*patch.Name)
		if err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if patch.Amount != nil {
		if err := validateAmount(patch.Amount); err != nil {
			return nil, err
		}
	}
	if err := validateDueDay(patch.DueDay); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, uc.categoryRepo, input.UserID, patch.CategoryID); err != nil {
		return nil, err
	}

	template, err := uc.templateRepo.FindOwnedByID(ctx, input.UserID, input.TemplateID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTemplateNotFound) {
			return nil, templateNotFound()
		}
		return nil, err
	}

	patch.Apply(template)
	if err := uc.templateRepo.Update(ctx, template); err != nil {
		if errors.Is(err, domainerror.ErrTemplateNotFound) {
			return nil, templateNotFound()
		}
		return nil, err
	}

	slog.InfoContext(ctx, "Fixed template updated",
		"user_id", input.UserID,
		"template_id", template.ID,
	)

	return &UpdateTemplateOutput{Template: toTemplateOutput(template)}, nil
}
