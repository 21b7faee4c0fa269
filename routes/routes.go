package routes

import (
	"net/http"
	"time"

	"slotpoll/handlers"
	"slotpoll/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPollRoutes registers the poll lifecycle endpoints.
func RegisterPollRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/polls")
	{
		api.Use(middleware.ParticipantMiddleware())
		api.POST("", hb.CreatePollHandler)
		api.GET("/:pollID", hb.GetPollHandler)
		api.GET("/:pollID/results", hb.ResultsHandler)
		api.PUT("/:pollID/respond", hb.RespondHandler)
		api.POST("/:pollID/finalize", hb.FinalizeHandler)
		api.DELETE("/:pollID", hb.DeletePollHandler)
		api.POST("/:pollID/conflicts", hb.ConflictsHandler)
	}

	// Creator-only listing requires the JWT issued at creation.
	creator := r.Group("/api/polls")
	creator.Use(middleware.CreatorAuthMiddleware())
	creator.GET("", hb.ListMyPollsHandler)
}

// RegisterAvailabilityRoutes registers grid-editing support endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.POST("/preview", hb.PreviewHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Slotpoll"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.AdminKeyHeader, middleware.ParticipantHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.ParticipantHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPollRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterHealthRoute(r)
}
