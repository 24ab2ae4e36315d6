package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listCategoriesUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listCategoriesUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{listCategoriesUseCase: listCategoriesUseCase}
}

// List handles GET /categories.
func (cc *CategoryController) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	output, err := cc.listCategoriesUseCase.Execute(c.Request.Context(), category.ListCategoriesInput{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}
