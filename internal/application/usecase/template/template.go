// Package template contains the fixed template registry use cases.
package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxNameLength is the maximum allowed length for template names.
const MaxNameLength = 120

// TemplateOutput represents a template in use case results.
type TemplateOutput struct {
	ID         int64
	Name       string
	Amount     decimal.Decimal
	CategoryID *int64
	DueDay     *int
	IsActive   bool
}

func toTemplateOutput(t *entity.FixedTemplate) *TemplateOutput {
	return &TemplateOutput{
		ID:         t.ID,
		Name:       t.Name,
		Amount:     t.Amount,
		CategoryID: t.CategoryID,
		DueDay:     t.DueDay,
		IsActive:   t.IsActive,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", domainerror.NewFixedError(
			domainerror.ErrCodeTemplateNameRequired,
			fmt.Sprintf("name is required and must not exceed %d characters", MaxNameLength),
			domainerror.ErrTemplateNameRequired,
		)
	}
	return name, nil
}

func validateAmount(amount *decimal.Decimal) error {
	if amount == nil || !amount.IsPositive() || !entity.IsStorableAmount(*amount) {
		return domainerror.NewFixedError(
			domainerror.ErrCodeInvalidTemplateAmount,
			"amount must be a positive number with at most two decimals",
			domainerror.ErrInvalidTemplateAmount,
		)
	}
	return nil
}

func validateDueDay(dueDay *int) error {
	if dueDay != nil && (*dueDay < entity.MinDueDay || *dueDay > entity.MaxDueDay) {
		return domainerror.NewFixedError(
			domainerror.ErrCodeInvalidDueDay,
			fmt.Sprintf("due_day must be between %d and %d", entity.MinDueDay, entity.MaxDueDay),
			domainerror.ErrInvalidDueDay,
		)
	}
	return nil
}

// checkCategory verifies the user may reference the category.
func checkCategory(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := repo.FindVisibleByID(ctx, userID, *categoryID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewFixedError(
				domainerror.ErrCodeTemplateCategory,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return err
	}
	return nil
}

func templateNotFound() error {
	return domainerror.NewFixedError(
		domainerror.ErrCodeTemplateNotFound,
		"template not found",
		domainerror.ErrTemplateNotFound,
	)
}
