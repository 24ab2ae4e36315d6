package template

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// ListTemplatesInput represents the input for listing templates.
type ListTemplatesInput struct {
	UserID uuid.UUID
}

// ListTemplatesOutput represents the output of listing templates.
type ListTemplatesOutput struct {
	Templates []*TemplateOutput
}

// ListTemplatesUseCase lists a user's active templates.
type ListTemplatesUseCase struct {
	templateRepo adapter.FixedTemplateRepository
}

// NewListTemplatesUseCase creates a new ListTemplatesUseCase instance.
func NewListTemplatesUseCase(templateRepo adapter.FixedTemplateRepository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{templateRepo: templateRepo}
}

// Execute returns the active templates ordered by name.
func (uc *ListTemplatesUseCase) Execute(ctx context.Context, input ListTemplatesInput) (*ListTemplatesOutput, error) {
	templates, err := uc.templateRepo.ListActive(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &ListTemplatesOutput{Templates: make([]*TemplateOutput, len(templates))}
	for i, t := range templates {
		output.Templates[i] = toTemplateOutput(t)
	}
	return output, nil
}
