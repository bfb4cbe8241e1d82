package routes

import (
	"innovation-registry-api/controllers"
	"innovation-registry-api/middleware"
	"innovation-registry-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Registration forms
			public.POST("/innovators", controllers.CreateInnovatorSubmission)
			public.POST("/collaborators", controllers.CreateCollaboratorSubmission)

			// Moderated public listing
			public.GET("/listing", controllers.GetPublicListing)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Innovation Registry API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetMyNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Submission review (moderators and admins can view)
			admin := protected.Group("/admin/submissions")
			admin.Use(middleware.RequireRole(models.RoleModerator, models.RoleAdmin))
			{
				admin.GET("", controllers.AdminListSubmissions)
				admin.GET("/:id", controllers.GetSubmissionDetails)

				// Only admins can decide or delete
				admin.POST("/:id/approve", middleware.RequireRole(models.RoleAdmin), controllers.ApproveSubmission)
				admin.POST("/:id/reject", middleware.RequireRole(models.RoleAdmin), controllers.RejectSubmission)
				admin.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteSubmission)
			}
		}
	}

	// 404 catch-all
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
