package template_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/usecase/template"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/testutil"
)

type useCases struct {
	create     *template.CreateTemplateUseCase
	list       *template.ListTemplatesUseCase
	update     *template.UpdateTemplateUseCase
	deactivate *template.DeactivateTemplateUseCase
}

func setup(t *testing.T) (useCases, func(owner *uuid.UUID, name string) int64) {
	gdb := testutil.NewDB(t)
	templateRepo := persistence.NewFixedTemplateRepository(gdb, testutil.QueryTimeout)
	categoryRepo := persistence.NewCategoryRepository(gdb, testutil.QueryTimeout)

	return useCases{
			create:     template.NewCreateTemplateUseCase(templateRepo, categoryRepo),
			list:       template.NewListTemplatesUseCase(templateRepo),
			update:     template.NewUpdateTemplateUseCase(templateRepo, categoryRepo),
			deactivate: template.NewDeactivateTemplateUseCase(templateRepo),
		}, func(owner *uuid.UUID, name string) int64 {
			return testutil.SeedCategory(t, gdb, owner, name)
		}
}

func ptr[T any](v T) *T {
	return &v
}

func requireCode(t *testing.T, err error, code domainerror.FixedErrorCode) {
	t.Helper()
	var fixedErr *domainerror.FixedError
	require.True(t, errors.As(err, &fixedErr), "expected FixedError, got %v", err)
	assert.Equal(t, code, fixedErr.Code)
}

func TestCreateTemplate_Validation(t *testing.T) {
	uc, seedCategory := setup(t)
	ctx := context.Background()
	userID, stranger := uuid.New(), uuid.New()
	foreignCategory := seedCategory(&stranger, "Private")
	amount := ptr(decimal.RequireFromString("100"))

	tests := []struct {
		name  string
		input template.CreateTemplateInput
		code  domainerror.FixedErrorCode
	}{
		{name: "blank name", input: template.CreateTemplateInput{Name: "  ", Amount: amount}, code: domainerror.ErrCodeTemplateNameRequired},
		{name: "missing amount", input: template.CreateTemplateInput{Name: "Rent"}, code: domainerror.ErrCodeInvalidTemplateAmount},
		{name: "zero amount", input: template.CreateTemplateInput{Name: "Rent", Amount: ptr(decimal.Zero)}, code: domainerror.ErrCodeInvalidTemplateAmount},
		{name: "negative amount", input: template.CreateTemplateInput{Name: "Rent", Amount: ptr(decimal.NewFromInt(-5))}, code: domainerror.ErrCodeInvalidTemplateAmount},
		{name: "sub-cent amount", input: template.CreateTemplateInput{Name: "Rent", Amount: ptr(decimal.RequireFromString("0.004"))}, code: domainerror.ErrCodeInvalidTemplateAmount},
		{name: "three decimals", input: template.CreateTemplateInput{Name: "Rent", Amount: ptr(decimal.RequireFromString("99.999"))}, code: domainerror.ErrCodeInvalidTemplateAmount},
		{name: "amount overflows column", input: template.CreateTemplateInput{Name: "Rent", Amount: ptr(decimal.New(1, 13))}, code: domainerror.ErrCodeInvalidTemplateAmount},
		{name: "due day zero", input: template.CreateTemplateInput{Name: "Rent", Amount: amount, DueDay: ptr(0)}, code: domainerror.ErrCodeInvalidDueDay},
		{name: "due day 32", input: template.CreateTemplateInput{Name: "Rent", Amount: amount, DueDay: ptr(32)}, code: domainerror.ErrCodeInvalidDueDay},
		{name: "foreign category", input: template.CreateTemplateInput{Name: "Rent", Amount: amount, CategoryID: &foreignCategory}, code: domainerror.ErrCodeTemplateCategory},
		{name: "unknown category", input: template.CreateTemplateInput{Name: "Rent", Amount: amount, CategoryID: ptr(int64(9999))}, code: domainerror.ErrCodeTemplateCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			input.UserID = userID
			_, err := uc.create.Execute(ctx, input)
			requireCode(t, err, tt.code)
		})
	}

	listed, err := uc.list.Execute(ctx, template.ListTemplatesInput{UserID: userID})
	require.NoError(t, err)
	assert.Empty(t, listed.Templates)
}

func TestTemplateLifecycle(t *testing.T) {
	uc, seedCategory := setup(t)
	ctx := context.Background()
	userID := uuid.New()
	housing := seedCategory(nil, "Housing")

	created, err := uc.create.Execute(ctx, template.CreateTemplateInput{
		UserID:     userID,
		Name:       " Rent ",
		Amount:     ptr(decimal.RequireFromString("1200.50")),
		CategoryID: &housing,
		DueDay:     ptr(31),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rent", created.Template.Name)
	assert.True(t, created.Template.IsActive)

	_, err = uc.create.Execute(ctx, template.CreateTemplateInput{
		UserID: userID,
		Name:   "Internet",
		Amount: ptr(decimal.RequireFromString("60")),
	})
	require.NoError(t, err)

	listed, err := uc.list.Execute(ctx, template.ListTemplatesInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, listed.Templates, 2)
	assert.Equal(t, "Internet", listed.Templates[0].Name)
	assert.Equal(t, "1200.50", listed.Templates[1].Amount.StringFixed(2))

	updated, err := uc.update.Execute(ctx, template.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: created.Template.ID,
		Patch:      entity.FixedTemplatePatch{Amount: ptr(decimal.RequireFromString("1300"))},
	})
	require.NoError(t, err)
	assert.Equal(t, "1300.00", updated.Template.Amount.StringFixed(2))
	assert.Equal(t, "Rent", updated.Template.Name)
	require.NotNil(t, updated.Template.DueDay)
	assert.Equal(t, 31, *updated.Template.DueDay)

	cleared, err := uc.update.Execute(ctx, template.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: created.Template.ID,
		Patch:      entity.FixedTemplatePatch{ClearCategoryID: true, ClearDueDay: true},
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Template.CategoryID)
	assert.Nil(t, cleared.Template.DueDay)
	assert.Equal(t, "1300.00", cleared.Template.Amount.StringFixed(2))

	require.NoError(t, uc.deactivate.Execute(ctx, template.DeactivateTemplateInput{UserID: userID, TemplateID: created.Template.ID}))

	listed, err = uc.list.Execute(ctx, template.ListTemplatesInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, listed.Templates, 1)
	assert.Equal(t, "Internet", listed.Templates[0].Name)
}

func TestUpdateTemplate_Errors(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := uc.create.Execute(ctx, template.CreateTemplateInput{
		UserID: userID,
		Name:   "Rent",
		Amount: ptr(decimal.RequireFromString("100")),
	})
	require.NoError(t, err)
	id := created.Template.ID

	_, err = uc.update.Execute(ctx, template.UpdateTemplateInput{UserID: userID, TemplateID: id})
	requireCode(t, err, domainerror.ErrCodeEmptyTemplatePatch)

	_, err = uc.update.Execute(ctx, template.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: id,
		Patch:      entity.FixedTemplatePatch{Amount: ptr(decimal.NewFromInt(-1))},
	})
	requireCode(t, err, domainerror.ErrCodeInvalidTemplateAmount)

	_, err = uc.update.Execute(ctx, template.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: id,
		Patch:      entity.FixedTemplatePatch{Amount: ptr(decimal.RequireFromString("100.001"))},
	})
	requireCode(t, err, domainerror.ErrCodeInvalidTemplateAmount)

	_, err = uc.update.Execute(ctx, template.UpdateTemplateInput{
		UserID:     uuid.New(),
		TemplateID: id,
		Patch:      entity.FixedTemplatePatch{Name: ptr("Hijacked")},
	})
	requireCode(t, err, domainerror.ErrCodeTemplateNotFound)

	err = uc.deactivate.Execute(ctx, template.DeactivateTemplateInput{UserID: uuid.New(), TemplateID: id})
	requireCode(t, err, domainerror.ErrCodeTemplateNotFound)

	listed, err := uc.list.Execute(ctx, template.ListTemplatesInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, listed.Templates, 1)
	assert.Equal(t, "Rent", listed.Templates[0].Name)
}
