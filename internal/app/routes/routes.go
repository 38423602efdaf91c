package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Revach69/bashert/internal/app/controllers"
	"github.com/Revach69/bashert/internal/app/models"
	"github.com/Revach69/bashert/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	eventController *controllers.EventController,
	browseController *controllers.BrowseController,
	interestController *controllers.InterestController,
	matchmakerController *controllers.MatchmakerController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Everything else requires a valid access token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)
		authenticated.POST("/auth/roles", authController.AssignRole)

		profiles := authenticated.Group("/profiles")
		{
			profiles.POST("", profileController.Create)
			profiles.GET("", profileController.List)
			profiles.GET("/:id", profileController.Get)
			profiles.PUT("/:id", profileController.Update)
			profiles.DELETE("/:id", profileController.Deactivate)
			profiles.GET("/:id/interests", interestController.ListIncoming)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.Create)
			events.GET("", eventController.ListMine)
			events.GET("/lookup/:code", eventController.Lookup)
			events.POST("/opt-in", eventController.OptIn)
			events.GET("/:id", eventController.Get)
			events.PUT("/:id", eventController.Update)
			events.PUT("/:id/active", eventController.SetActive)
			events.PUT("/:id/matchmaker", eventController.AssignMatchmaker)
			events.GET("/:id/participants", eventController.ListParticipants)
			events.DELETE("/:id/leave", eventController.Leave)
			events.GET("/:id/browse", browseController.Browse)
			events.GET("/:id/profiles/:profileId", browseController.GetProfile)
			events.GET("/:id/interests/sent", interestController.ListSent)
			events.GET("/:id/interests/sent-targets", interestController.SentTargets)
		}

		interests := authenticated.Group("/interests")
		{
			interests.POST("", interestController.Create)
			interests.DELETE("/:id", interestController.Cancel)
		}

		// Matchmaker surface. The role gate here is coarse; per-event
		// authorization happens in the service layer against the
		// assigned matchmaker.
		matchmaker := authenticated.Group("/matchmaker")
		matchmaker.Use(authMiddleware.RoleRequired(models.RoleMatchmaker))
		{
			matchmaker.GET("/events", matchmakerController.ListEvents)
			matchmaker.GET("/events/:id/requests", matchmakerController.ListEventRequests)
			matchmaker.PUT("/requests/:id/status", matchmakerController.UpdateStatus)
			matchmaker.PUT("/requests/:id/notes", matchmakerController.SetNote)
		}

		authenticated.GET("/dashboard", dashboardController.Stats)
	}
}
