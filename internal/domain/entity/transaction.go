package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction is a single income or expense event. Amount is always
// positive; the sign comes from Type.
type Transaction struct {
	ID          int64
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  *int64
	Description string
	OccurredAt  time.Time
	MonthDate   valueobject.Month
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// NewTransaction creates a transaction and derives its month key from occurredAt.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID *int64,
	description string,
	occurredAt time.Time,
) *Transaction {
	day := time.Date(occurredAt.Year(), occurredAt.Month(), occurredAt.Day(), 0, 0, 0, 0, time.UTC)
	return &Transaction{
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		OccurredAt:  day,
		MonthDate:   valueobject.MonthOf(day),
		CreatedAt:   time.Now().UTC(),
	}
}

// SignedAmount returns the amount with the sign implied by the type.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
