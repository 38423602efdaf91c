package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/middleware"
)

// MatchmakerController handles the matchmaker side of interest requests
type MatchmakerController struct {
	interestService *services.InterestService
	eventService    *services.EventService
}

// NewMatchmakerController creates a new MatchmakerController
func NewMatchmakerController(interestService *services.InterestService, eventService *services.EventService) *MatchmakerController {
	return &MatchmakerController{
		interestService: interestService,
		eventService:    eventService,
	}
}

// ListEvents returns the events assigned to the caller
// @Summary List events I matchmake
// @Description Returns every event where the caller is the assigned matchmaker, newest first
// @Tags matchmaker
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matchmaker/events [get]
func (c *MatchmakerController) ListEvents(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	events, err := c.eventService.ListMatchmakerEvents(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponseList(events)))
}

// ListEventRequests returns every interest request of an event
// @Summary List event interest requests
// @Description Returns all interest requests of an event with both profiles attached. Assigned matchmaker only.
// @Tags matchmaker
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterestRequestResponse} "Interest requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned matchmaker"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matchmaker/events/{id}/requests [get]
func (c *MatchmakerController) ListEventRequests(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	requests, err := c.interestService.ListEventRequests(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewInterestRequestResponseList(requests)))
}

// UpdateStatus moves a request through the review workflow
// @Summary Update request status
// @Description Applies a workflow transition to an interest request. Assigned matchmaker only; illegal transitions are rejected.
// @Tags matchmaker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interest request ID"
// @Param request body dto.UpdateRequestStatusRequest true "Target status and optional notes"
// @Success 200 {object} dto.APIResponse{data=dto.InterestRequestResponse} "Updated request"
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned matchmaker"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 422 {object} dto.ErrorResponse "Illegal status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matchmaker/requests/{id}/status [put]
func (c *MatchmakerController) UpdateStatus(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	requestID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRequestStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	request, err := c.interestService.UpdateStatus(ctx.Request.Context(), userID, requestID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewInterestRequestResponse(request)))
}

// SetNote attaches working notes to a request
// @Summary Set matchmaker notes
// @Description Replaces the private matchmaker notes on an interest request. Assigned matchmaker only.
// @Tags matchmaker
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interest request ID"
// @Param request body dto.MatchmakerNoteRequest true "Note text"
// @Success 200 {object} dto.APIResponse{data=dto.InterestRequestResponse} "Updated request"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the assigned matchmaker"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /matchmaker/requests/{id}/notes [put]
func (c *MatchmakerController) SetNote(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	requestID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MatchmakerNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	request, err := c.interestService.SetNote(ctx.Request.Context(), userID, requestID, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewInterestRequestResponse(request)))
}
