package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/profile"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// ProfileController handles the caller's profile endpoints.
type ProfileController struct {
	getProfileUseCase    *profile.GetProfileUseCase
	updateProfileUseCase *profile.UpdateProfileUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	getProfileUseCase *profile.GetProfileUseCase,
	updateProfileUseCase *profile.UpdateProfileUseCase,
) *ProfileController {
	return &ProfileController{
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
	}
}

// Get handles GET /profiles/me.
func (pc *ProfileController) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	output, err := pc.getProfileUseCase.Execute(c.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// Update handles PUT and PATCH /profiles/me. Both apply a partial update.
func (pc *ProfileController) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	output, err := pc.updateProfileUseCase.Execute(c.Request.Context(), profile.UpdateProfileInput{
		UserID: userID,
		Patch:  req.ToPatch(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}
