package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/middleware"
)

// EventController handles event lifecycle and participation
type EventController struct {
	eventService *services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// Create handles event creation
// @Summary Create an event
// @Description Creates a time-boxed event with a generated join code. The caller becomes the organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Join code allocation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// Get returns a single event
// @Summary Get an event
// @Description Returns an event visible to the caller as organizer, matchmaker or participant
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No relationship with this event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.Get(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// Lookup resolves an event by join code
// @Summary Look up an event by join code
// @Description Resolves an active event from its join code, normalized case-insensitively
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param code path string true "Join code"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event"
// @Failure 400 {object} dto.ErrorResponse "Malformed join code"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No active event with this code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/lookup/{code} [get]
func (c *EventController) Lookup(ctx *gin.Context) {
	event, err := c.eventService.GetByJoinCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// OptIn enters a profile card into an event
// @Summary Opt a profile into an event
// @Description Opts one of the caller's profile cards into an event, resolved by join code or event ID
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OptInRequest true "Event reference and profile"
// @Success 201 {object} dto.APIResponse{data=dto.ParticipationResponse} "Participation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the profile owner"
// @Failure 404 {object} dto.ErrorResponse "Event or profile not found"
// @Failure 409 {object} dto.ErrorResponse "Profile already participates"
// @Failure 422 {object} dto.ErrorResponse "Event no longer accepting participants"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/opt-in [post]
func (c *EventController) OptIn(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	var req dto.OptInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	participation, err := c.eventService.OptIn(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewParticipationResponse(participation)))
}

// ListMine returns every event the caller is connected to
// @Summary List my events
// @Description Returns events the caller organizes, matchmakes or participates in, newest first
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListMine(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	events, err := c.eventService.ListMyEvents(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponseList(events)))
}

// ListParticipants returns the opt-ins of an event
// @Summary List event participants
// @Description Returns every participation with its profile card. Restricted to the organizer and the matchmaker.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ParticipationResponse} "Participations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer or matchmaker"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/participants [get]
func (c *EventController) ListParticipants(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	participations, err := c.eventService.ListParticipants(ctx.Request.Context(), userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.ParticipationResponse, 0, len(participations))
	for _, p := range participations {
		responses = append(responses, dto.NewParticipationResponse(p))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// AssignMatchmaker sets the event matchmaker
// @Summary Assign a matchmaker
// @Description Assigns the matchmaker for an event by email. Organizer only; the target must hold the matchmaker role.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.AssignMatchmakerRequest true "Matchmaker email"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Updated event"
// @Failure 400 {object} dto.ErrorResponse "Target lacks the matchmaker role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event or account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/matchmaker [put]
func (c *EventController) AssignMatchmaker(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignMatchmakerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	event, err := c.eventService.AssignMatchmaker(ctx.Request.Context(), userID, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// Update handles event edits
// @Summary Update an event
// @Description Replaces the editable fields of an event. Organizer only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Updated event"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	event, err := c.eventService.Update(ctx.Request.Context(), userID, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// SetActive opens or closes an event
// @Summary Open or close an event
// @Description Toggles the active flag. Closed events reject join-code lookups and new interest requests. Organizer only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.SetEventActiveRequest true "Desired state"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Updated event"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizer"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/active [put]
func (c *EventController) SetActive(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetEventActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(ctx, err)
		return
	}

	event, err := c.eventService.SetActive(ctx.Request.Context(), userID, eventID, *req.Active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewEventResponse(event)))
}

// Leave withdraws the caller's profiles from an event
// @Summary Leave an event
// @Description Removes every participating profile the caller owns from the event, along with their interest requests
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Left the event"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No participating profile in this event"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/leave [delete]
func (c *EventController) Leave(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	eventID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Leave(ctx.Request.Context(), userID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Left the event"))
}
