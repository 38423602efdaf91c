package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/middleware"
)

// BrowseController exposes the window-gated participant listing
type BrowseController struct {
	browseService *services.BrowseService
}

// NewBrowseController creates a new BrowseController
func NewBrowseController(browseService *services.BrowseService) *BrowseController {
	return &BrowseController{browseService: browseService}
}

// Browse lists the profiles participating in an event
// @Summary Browse event participants
// @Description Returns participating profile cards in their public form. Only available inside the event's visibility window, and never includes the caller's own profiles.
// @Tags browse
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param gender query string false "Exact gender filter" Enums(male, female)
// @Param hashkafa query string false "Exact hashkafa filter"
// @Param ethnicity query string false "Exact ethnicity filter"
// @Param education query string false "Exact education filter"
// @Param minAge query int false "Inclusive minimum age at event start"
// @Param maxAge query int false "Inclusive maximum age at event start"
// @Success 200 {object} dto.APIResponse{data=dto.BrowseResponse} "Participating profiles"
// @Failure 400 {object} dto.ErrorResponse "Invalid filters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No relationship with this event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 422 {object} dto.ErrorResponse "Visibility window closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/browse [get]
func (c *BrowseController) Browse(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var filters dto.BrowseFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	profiles, err := c.browseService.Browse(ctx.Request.Context(), userID, eventID, &filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.PublicProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, dto.NewPublicProfileResponse(profile))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.BrowseResponse{
		EventID:  eventID,
		Profiles: responses,
	}))
}

// GetProfile returns the full card of an event participant
// @Summary View a participant's full profile
// @Description Returns a participating profile with contact fields. The caller must own a profile participating in the same event; organizing or matchmaking the event is not enough.
// @Tags browse
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param profileId path int true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Full profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No participating profile in this event"
// @Failure 404 {object} dto.ErrorResponse "Event or profile not found"
// @Failure 422 {object} dto.ErrorResponse "Visibility window closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/profiles/{profileId} [get]
func (c *BrowseController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	profileID, ok := idParam(ctx, "profileId")
	if !ok {
		return
	}

	profile, err := c.browseService.GetProfile(ctx.Request.Context(), userID, eventID, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewProfileResponse(profile)))
}
