package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/middleware"
)

// ProfileController handles profile card management for creators
type ProfileController struct {
	profileService *services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// Create handles profile card creation
// @Summary Create a profile card
// @Description Creates a profile card owned by the authenticated creator
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfileRequest true "Profile information"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles [post]
func (c *ProfileController) Create(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	var req dto.CreateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	profile, err := c.profileService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewProfileResponse(profile)))
}

// List returns the authenticated creator's profile cards
// @Summary List my profile cards
// @Description Returns every active profile card owned by the authenticated creator
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfileResponse} "Profile cards"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles [get]
func (c *ProfileController) List(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	profiles, err := c.profileService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, dto.NewProfileResponse(profile))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// Get returns a single profile card
// @Summary Get a profile card
// @Description Returns a profile card owned by the authenticated creator
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile card ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile card"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the profile owner"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id} [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	profileID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.profileService.Get(ctx.Request.Context(), userID, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile)))
}

// Update handles partial profile card updates
// @Summary Update a profile card
// @Description Applies a partial update to a profile card owned by the authenticated creator
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile card ID"
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile card"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the profile owner"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id} [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	profileID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	profile, err := c.profileService.Update(ctx.Request.Context(), userID, profileID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile)))
}

// Deactivate retires a profile card
// @Summary Deactivate a profile card
// @Description Marks a profile card inactive. Inactive cards no longer appear in any listing.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile card ID"
// @Success 200 {object} dto.APIResponse "Profile deactivated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the profile owner"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id} [delete]
func (c *ProfileController) Deactivate(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	profileID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.profileService.Deactivate(ctx.Request.Context(), userID, profileID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Profile deactivated"))
}
