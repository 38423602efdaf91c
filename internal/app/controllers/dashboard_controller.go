package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/models/dto"
	"github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/middleware"
)

// DashboardController serves aggregate counters for the landing screen
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Stats returns the caller's dashboard counters
// @Summary Get dashboard statistics
// @Description Returns creator counters for every account, plus matchmaker counters when the caller matchmakes
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated())
		return
	}

	stats, err := c.dashboardService.GetStats(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
