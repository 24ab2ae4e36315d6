// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// CreateTransactionInput represents the input for transaction creation.
// CategoryID takes precedence over CategoryName.
type CreateTransactionInput struct {
	UserID       uuid.UUID
	Type         entity.TransactionType
	Amount       *decimal.Decimal
	CategoryID   *int64
	CategoryName string
	Description  string
	OccurredAt   *time.Time
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	resolver        *category.Resolver
	now             func() time.Time
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		resolver:        category.NewResolver(categoryRepo),
		now:             time.Now,
	}
}

// Execute validates the input, resolves the category and stores the transaction.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	txType := input.Type
	if txType == "" {
		txType = entity.TransactionTypeExpense
	}
	if !txType.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if input.Amount == nil || !input.Amount.IsPositive() || !entity.IsStorableAmount(*input.Amount) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be a positive number with at most two decimals",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	occurredAt := uc.now().UTC()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	categoryID, err := uc.resolveCategory(ctx, input)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(input.UserID, txType, *input.Amount, categoryID, description, occurredAt)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Transaction created",
		"user_id", input.UserID,
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"month", transaction.MonthDate.String(),
	)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

func (uc *CreateTransactionUseCase) resolveCategory(ctx context.Context, input CreateTransactionInput) (*int64, error) {
	var (
		id  int64
		err error
	)
	switch {
	case input.CategoryID != nil:
		id, err = uc.resolver.ByID(ctx, input.UserID, *input.CategoryID)
	case strings.TrimSpace(input.CategoryName) != "":
		id, err = uc.resolver.ByName(ctx, input.UserID, input.CategoryName)
	default:
		return nil, nil
	}

	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) || errors.Is(err, domainerror.ErrCategoryNameRequired) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				err,
			)
		}
		return nil, err
	}
	return &id, nil
}
