package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user id or writes a 401.
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// monthQuery parses the required ?month=YYYY-MM-01 parameter or writes a 400.
func monthQuery(c *gin.Context) (valueobject.Month, bool) {
	var query dto.MonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, valueobject.ErrInvalidMonth)
		return valueobject.Month{}, false
	}
	month, err := valueobject.ParseMonth(query.Month)
	if err != nil {
		respondError(c, err)
		return valueobject.Month{}, false
	}
	return month, true
}

// pathID parses the :id path parameter as a positive integer or writes a 400
// with the given code.
func pathID(c *gin.Context, code, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: message,
			Code:  code,
		})
		return 0, false
	}
	return id, true
}

func invalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Details: err.Error(),
	})
}
