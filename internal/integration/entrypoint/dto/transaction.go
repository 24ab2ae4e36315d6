package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for transaction creation.
// Type defaults to expense and occurred_at to today.
type CreateTransactionRequest struct {
	Type         string           `json:"type,omitempty"`
	Amount       *decimal.Decimal `json:"amount"`
	CategoryID   *int64           `json:"category_id,omitempty"`
	CategoryName string           `json:"category_name,omitempty"`
	Description  string           `json:"description,omitempty"`
	OccurredAt   string           `json:"occurred_at,omitempty"`
}

// ListTransactionsQuery holds the query parameters of the transaction listing.
type ListTransactionsQuery struct {
	Limit      int    `form:"limit"`
	BeforeID   *int64 `form:"before_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	CategoryID *int64 `form:"category_id"`
	Type       string `form:"type"`
	Query      string `form:"q"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          int64       `json:"id"`
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	CategoryID  *int64      `json:"category_id"`
	Description string      `json:"description"`
	OccurredAt  string      `json:"occurred_at"`
	MonthDate   string      `json:"month_date"`
}

// TransactionListResponse is one page of transactions.
type TransactionListResponse struct {
	Items        []TransactionResponse `json:"items"`
	NextBeforeID *int64                `json:"next_before_id"`
}

// ToTransactionResponse converts a domain Transaction to its response DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      Money(t.Amount),
		CategoryID:  t.CategoryID,
		Description: t.Description,
		OccurredAt:  t.OccurredAt.Format(DateLayout),
		MonthDate:   t.MonthDate.String(),
	}
}

// ToTransactionListResponse converts a page of transactions.
func ToTransactionListResponse(transactions []*entity.Transaction, next *int64) TransactionListResponse {
	resp := TransactionListResponse{
		Items:        make([]TransactionResponse, len(transactions)),
		NextBeforeID: next,
	}
	for i, t := range transactions {
		resp.Items[i] = ToTransactionResponse(t)
	}
	return resp
}
