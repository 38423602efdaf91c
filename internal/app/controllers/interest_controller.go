package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/middleware"
)

// InterestController handles the creator side of interest requests
type InterestController struct {
	interestService *services.InterestService
}

// NewInterestController creates a new InterestController
func NewInterestController(interestService *services.InterestService) *InterestController {
	return &InterestController{interestService: interestService}
}

// Create submits an interest request
// @Summary Express interest
// @Description Submits an interest request between two participating profiles. A reciprocal pending pair is flagged as a mutual match.
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInterestRequest true "Interest request"
// @Success 201 {object} dto.APIResponse{data=dto.InterestRequestResponse} "Interest recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the profile owner"
// @Failure 404 {object} dto.ErrorResponse "Event or profile not found"
// @Failure 409 {object} dto.ErrorResponse "Interest already expressed for this pairing"
// @Failure 422 {object} dto.ErrorResponse "Event closed or submission deadline passed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interests [post]
func (c *InterestController) Create(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	var req dto.CreateInterestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	request, err := c.interestService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewInterestRequestResponse(request)))
}

// ListSent returns the caller's requests in an event
// @Summary List my sent requests
// @Description Returns the interest requests the caller submitted in an event, newest first
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterestRequestResponse} "Sent requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/interests/sent [get]
func (c *InterestController) ListSent(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.interestService.ListSentRequests(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewInterestRequestResponseList(requests)))
}

// ListIncoming returns the approved requests addressed to a profile
// @Summary List incoming interest
// @Description Returns the approved interest requests addressed to one of the caller's profiles. Requests the matchmaker has not approved are never shown to the target side.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Profile ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterestRequestResponse} "Approved incoming requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the profile owner"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id}/interests [get]
func (c *InterestController) ListIncoming(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	profileID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.interestService.ListIncomingRequests(ctx.Request.Context(), userID, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewInterestRequestResponseList(requests)))
}

// SentTargets returns the target profile IDs the caller already approached
// @Summary List my sent target IDs
// @Description Returns the profile IDs the caller has already expressed interest in within an event, for marking browse results
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]int64} "Target profile IDs"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/interests/sent-targets [get]
func (c *InterestController) SentTargets(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	ids, err := c.interestService.SentTargetIDs(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ids))
}

// Cancel withdraws a pending interest request
// @Summary Cancel an interest request
// @Description Deletes a pending request the caller submitted. A mutual match flagged by the pairing is cleared.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interest request ID"
// @Success 200 {object} dto.APIResponse "Request cancelled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the requester"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 422 {object} dto.ErrorResponse "Only pending requests can be cancelled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interests/{id} [delete]
func (c *InterestController) Cancel(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	requestID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.interestService.Cancel(ctx.Request.Context(), userID, requestID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Request cancelled"))
}
