package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction-related HTTP requests.
type TransactionController struct {
	createTransactionUseCase *transaction.CreateTransactionUseCase
	listTransactionsUseCase  *transaction.ListTransactionsUseCase
	deleteTransactionUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createTransactionUseCase *transaction.CreateTransactionUseCase,
	listTransactionsUseCase *transaction.ListTransactionsUseCase,
	deleteTransactionUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		createTransactionUseCase: createTransactionUseCase,
		listTransactionsUseCase:  listTransactionsUseCase,
		deleteTransactionUseCase: deleteTransactionUseCase,
	}
}

// Create handles POST /transactions and POST /expenses.
func (tc *TransactionController) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	occurredAt, err := parseDate(req.OccurredAt)
	if err != nil {
		respondError(c, err)
		return
	}

	output, err := tc.createTransactionUseCase.Execute(c.Request.Context(), transaction.CreateTransactionInput{
		UserID:       userID,
		Type:         entity.TransactionType(req.Type),
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Description:  req.Description,
		OccurredAt:   occurredAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /transactions with cursor pagination.
func (tc *TransactionController) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var query dto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	from, err := parseDate(query.From)
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := parseDate(query.To)
	if err != nil {
		respondError(c, err)
		return
	}

	input := transaction.ListTransactionsInput{
		UserID:     userID,
		Limit:      query.Limit,
		BeforeID:   query.BeforeID,
		From:       from,
		To:         to,
		CategoryID: query.CategoryID,
		Query:      query.Query,
	}
	if query.Type != "" {
		txType := entity.TransactionType(query.Type)
		input.Type = &txType
	}

	output, err := tc.listTransactionsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions, output.NextBeforeID))
}

// Delete handles DELETE /transactions/:id.
func (tc *TransactionController) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(domainerror.ErrCodeInvalidTransactionID), "Invalid transaction ID")
	if !ok {
		return
	}

	if err := tc.deleteTransactionUseCase.Execute(c.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: id,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDate reads an optional YYYY-MM-DD value.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"dates must use YYYY-MM-DD format",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	return &t, nil
}
