package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/fixed"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// FixedController handles the monthly fixed obligation endpoints.
type FixedController struct {
	ensureMonthUseCase    *fixed.EnsureMonthUseCase
	listInstancesUseCase  *fixed.ListInstancesUseCase
	setPaidUseCase        *fixed.SetPaidUseCase
	deleteInstanceUseCase *fixed.DeleteInstanceUseCase
}

// NewFixedController creates a new fixed controller instance.
func NewFixedController(
	ensureMonthUseCase *fixed.EnsureMonthUseCase,
	listInstancesUseCase *fixed.ListInstancesUseCase,
	setPaidUseCase *fixed.SetPaidUseCase,
	deleteInstanceUseCase *fixed.DeleteInstanceUseCase,
) *FixedController {
	return &FixedController{
		ensureMonthUseCase:    ensureMonthUseCase,
		listInstancesUseCase:  listInstancesUseCase,
		setPaidUseCase:        setPaidUseCase,
		deleteInstanceUseCase: deleteInstanceUseCase,
	}
}

// Ensure handles POST /fixed/ensure?month=YYYY-MM-01.
func (fc *FixedController) Ensure(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	output, err := fc.ensureMonthUseCase.Execute(c.Request.Context(), fixed.EnsureMonthInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEnsureMonthResponse(month.String(), output))
}

// List handles GET /fixed?month=YYYY-MM-01.
func (fc *FixedController) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	output, err := fc.listInstancesUseCase.Execute(c.Request.Context(), fixed.ListInstancesInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFixedInstanceListResponse(output.Instances))
}

// Pay handles POST /fixed/:id/pay.
func (fc *FixedController) Pay(c *gin.Context) {
	fc.setPaid(c, true)
}

// Unpay handles POST /fixed/:id/unpay.
func (fc *FixedController) Unpay(c *gin.Context) {
	fc.setPaid(c, false)
}

func (fc *FixedController) setPaid(c *gin.Context, paid bool) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(domainerror.ErrCodeInvalidFixedInstanceID), "Invalid fixed instance ID")
	if !ok {
		return
	}

	output, err := fc.setPaidUseCase.Execute(c.Request.Context(), fixed.SetPaidInput{
		UserID:     userID,
		InstanceID: id,
		Paid:       paid,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFixedInstanceResponse(output.Instance))
}

// Delete handles DELETE /fixed/:id. The instance is removed from its month
// and the template is not materialized there again.
func (fc *FixedController) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(domainerror.ErrCodeInvalidFixedInstanceID), "Invalid fixed instance ID")
	if !ok {
		return
	}

	if err := fc.deleteInstanceUseCase.Execute(c.Request.Context(), fixed.DeleteInstanceInput{
		UserID:     userID,
		InstanceID: id,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
