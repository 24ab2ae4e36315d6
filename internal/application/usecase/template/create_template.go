package template

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CreateTemplateInput represents the input for template creation.
type CreateTemplateInput struct {
	UserID     uuid.UUID
	Name       string
	Amount     *decimal.Decimal
	CategoryID *int64
	DueDay     *int
}

// CreateTemplateOutput represents the output of template creation.
type CreateTemplateOutput struct {
	Template *TemplateOutput
}

// CreateTemplateUseCase handles template creation logic.
type CreateTemplateUseCase struct {
	templateRepo adapter.FixedTemplateRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateTemplateUseCase creates a new CreateTemplateUseCase instance.
func NewCreateTemplateUseCase(
	templateRepo adapter.FixedTemplateRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute validates the input and stores an active template.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, input CreateTemplateInput) (*CreateTemplateOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateDueDay(input.DueDay); err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID); err != nil {
		return nil, err
	}

	template := entity.NewFixedTemplate(input.UserID, name, *input.Amount, input.CategoryID, input.DueDay)
	if err := uc.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Fixed template created",
		"user_id", input.UserID,
		"template_id", template.ID,
	)

	return &CreateTemplateOutput{Template: toTemplateOutput(template)}, nil
}
