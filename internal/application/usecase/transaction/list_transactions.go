package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// Page size bounds for transaction listings.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// ListTransactionsInput represents the input for listing transactions.
// A zero Limit means DefaultPageLimit.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	Limit      int
	BeforeID   *int64
	From       *time.Time
	To         *time.Time
	CategoryID *int64
	Type       *entity.TransactionType
	Query      string
}

// ListTransactionsOutput is one page of transactions, newest id first.
// NextBeforeID is set when the page is full and more rows may follow.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	NextBeforeID *int64
}

// ListTransactionsUseCase handles cursor pagination of transactions.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute returns the page of transactions with ids below BeforeID.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 || limit > MaxPageLimit {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPageLimit,
			"limit must be between 1 and 50",
			domainerror.ErrInvalidPageLimit,
		)
	}
	if input.BeforeID != nil && *input.BeforeID <= 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidCursor,
			"before_id must be a positive id",
			domainerror.ErrInvalidCursor,
		)
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	transactions, err := uc.transactionRepo.List(ctx, adapter.TransactionFilter{
		UserID:     input.UserID,
		Limit:      limit,
		BeforeID:   input.BeforeID,
		From:       input.From,
		To:         input.To,
		CategoryID: input.CategoryID,
		Type:       input.Type,
		Query:      input.Query,
	})
	if err != nil {
		return nil, err
	}

	output := &ListTransactionsOutput{Transactions: transactions}
	if len(transactions) == limit {
		next := transactions[len(transactions)-1].ID
		output.NextBeforeID = &next
	}
	return output, nil
}
