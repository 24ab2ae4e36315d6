package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/analytics"
	"github.com/finance-tracker/ledger/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// SummaryController handles the monthly aggregation endpoints.
type SummaryController struct {
	getMonthlySummaryUseCase   *summary.GetMonthlySummaryUseCase
	getMonthlyAnalyticsUseCase *analytics.GetMonthlyAnalyticsUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	getMonthlySummaryUseCase *summary.GetMonthlySummaryUseCase,
	getMonthlyAnalyticsUseCase *analytics.GetMonthlyAnalyticsUseCase,
) *SummaryController {
	return &SummaryController{
		getMonthlySummaryUseCase:   getMonthlySummaryUseCase,
		getMonthlyAnalyticsUseCase: getMonthlyAnalyticsUseCase,
	}
}

// Summary handles GET /summary?month=YYYY-MM-01.
func (sc *SummaryController) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	output, err := sc.getMonthlySummaryUseCase.Execute(c.Request.Context(), summary.GetMonthlySummaryInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(output.Summary))
}

// Analytics handles GET /analytics/monthly?month=YYYY-MM-01.
func (sc *SummaryController) Analytics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}

	output, err := sc.getMonthlyAnalyticsUseCase.Execute(c.Request.Context(), analytics.GetMonthlyAnalyticsInput{
		UserID: userID,
		Month:  month,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(output.Analytics))
}
