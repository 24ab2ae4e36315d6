package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/template"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TemplateController handles fixed template registry endpoints.
type TemplateController struct {
	createTemplateUseCase     *template.CreateTemplateUseCase
	listTemplatesUseCase      *template.ListTemplatesUseCase
	updateTemplateUseCase     *template.UpdateTemplateUseCase
	deactivateTemplateUseCase *template.DeactivateTemplateUseCase
}

// NewTemplateController creates a new template controller instance.
func NewTemplateController(
	createTemplateUseCase *template.CreateTemplateUseCase,
	listTemplatesUseCase *template.ListTemplatesUseCase,
	updateTemplateUseCase *template.UpdateTemplateUseCase,
	deactivateTemplateUseCase *template.DeactivateTemplateUseCase,
) *TemplateController {
	return &TemplateController{
		createTemplateUseCase:     createTemplateUseCase,
		listTemplatesUseCase:      listTemplatesUseCase,
		updateTemplateUseCase:     updateTemplateUseCase,
		deactivateTemplateUseCase: deactivateTemplateUseCase,
	}
}

// List handles GET /templates.
func (tc *TemplateController) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	output, err := tc.listTemplatesUseCase.Execute(c.Request.Context(), template.ListTemplatesInput{
		UserID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateListResponse(output.Templates))
}

// Create handles POST /templates.
func (tc *TemplateController) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	output, err := tc.createTemplateUseCase.Execute(c.Request.Context(), template.CreateTemplateInput{
		UserID:     userID,
		Name:       req.Name,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		DueDay:     req.DueDay,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateResponse(output.Template))
}

// Update handles PATCH /templates/:id.
func (tc *TemplateController) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(domainerror.ErrCodeInvalidTemplateID), "Invalid template ID")
	if !ok {
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	output, err := tc.updateTemplateUseCase.Execute(c.Request.Context(), template.UpdateTemplateInput{
		UserID:     userID,
		TemplateID: id,
		Patch:      req.ToPatch(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateResponse(output.Template))
}

// Deactivate handles DELETE /templates/:id. The template stops
// materializing; its row and past instances stay.
func (tc *TemplateController) Deactivate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, string(domainerror.ErrCodeInvalidTemplateID), "Invalid template ID")
	if !ok {
		return
	}

	if err := tc.deactivateTemplateUseCase.Execute(c.Request.Context(), template.DeactivateTemplateInput{
		UserID:     userID,
		TemplateID: id,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
