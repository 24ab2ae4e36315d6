package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// respondError writes the HTTP response for an error returned by a use case.
// Missing and foreign rows share one 404 body.
func respondError(c *gin.Context, err error) {
	var (
		fixedErr   *domainerror.FixedError
		txnErr     *domainerror.TransactionError
		profileErr *domainerror.ProfileError
		storeErr   *domainerror.StoreError
	)

	switch {
	case errors.As(err, &fixedErr):
		c.JSON(statusForFixedError(fixedErr.Code), dto.ErrorResponse{
			Error: fixedErr.Message,
			Code:  string(fixedErr.Code),
		})
	case errors.As(err, &txnErr):
		c.JSON(statusForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
	case errors.As(err, &profileErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: profileErr.Message,
			Code:  string(profileErr.Code),
		})
	case errors.Is(err, valueobject.ErrInvalidMonth):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be YYYY-MM-01",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
	case errors.As(err, &storeErr):
		slog.ErrorContext(c.Request.Context(), "Ledger store error",
			"op", storeErr.Op,
			"retryable", storeErr.Retryable,
			"error", storeErr.Err,
		)
		status := http.StatusInternalServerError
		message := "An internal error occurred"
		if storeErr.Retryable {
			status = http.StatusServiceUnavailable
			message = "Ledger store temporarily unavailable"
		}
		c.JSON(status, dto.ErrorResponse{
			Error:     message,
			Code:      string(storeErr.Code),
			Retryable: storeErr.Retryable,
		})
	default:
		slog.ErrorContext(c.Request.Context(), "Unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func statusForFixedError(code domainerror.FixedErrorCode) int {
	switch code {
	case domainerror.ErrCodeTemplateNotFound,
		domainerror.ErrCodeFixedInstanceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
