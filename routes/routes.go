package routes

import (
	"desa-portal-api/controllers"
	"desa-portal-api/middleware"
	"desa-portal-api/utils"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// Stored documents for the admin detail view
	router.Static("/uploads", utils.UploadPath())

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/auth/login", controllers.Login)
			public.POST("/auth/logout", controllers.Logout)

			// Citizen intake and tracking
			public.POST("/requests", controllers.CreateRequest)
			public.GET("/requests/track/:trackingNumber", controllers.TrackRequest)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Portal Desa API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", controllers.Me)

			// Request triage
			requests := protected.Group("/requests")
			{
				requests.GET("", controllers.ListRequests)
				requests.GET("/stats", controllers.GetStats)
				requests.GET("/:id", controllers.GetRequest)
				requests.PATCH("/:id/status", controllers.UpdateRequestStatus)
				requests.DELETE("/:id", controllers.DeleteRequest)
			}
		}
	}
}
