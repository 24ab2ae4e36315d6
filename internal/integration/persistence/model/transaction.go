package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          int64             `gorm:"primaryKey;autoIncrement;index:idx_transactions_user_id,priority:2,sort:desc"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index:idx_transactions_user_month,priority:1;index:idx_transactions_user_id,priority:1"`
	Type        string            `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal   `gorm:"type:decimal(15,2);not null"`
	CategoryID  *int64            `gorm:"index"`
	Description string            `gorm:"type:varchar(255);not null"`
	OccurredAt  time.Time         `gorm:"type:date;not null"`
	MonthDate   valueobject.Month `gorm:"not null;index:idx_transactions_user_month,priority:2"`
	CreatedAt   time.Time         `gorm:"not null"`
	DeletedAt   gorm.DeletedAt    `gorm:"index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		OccurredAt:  m.OccurredAt.UTC(),
		MonthDate:   m.MonthDate,
		CreatedAt:   m.CreatedAt,
		DeletedAt:   deletedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        string(transaction.Type),
		Amount:      transaction.Amount,
		CategoryID:  transaction.CategoryID,
		Description: transaction.Description,
		OccurredAt:  transaction.OccurredAt,
		MonthDate:   transaction.MonthDate,
		CreatedAt:   transaction.CreatedAt,
		DeletedAt:   deletedAt,
	}
}
