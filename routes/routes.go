package routes

import (
	"journal-management-api/controllers"
	"journal-management-api/middleware"
	"journal-management-api/models"

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
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// Public archive
			public.GET("/published", controllers.GetPublished)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/settings", controllers.UpdateSettings)

			// Papers
			papers := protected.Group("/papers")
			{
				papers.POST("", controllers.SubmitPaper)
				papers.GET("", controllers.GetPapers)
				papers.GET("/:id", controllers.GetPaper)
				papers.POST("/:id/versions", controllers.AddVersion)
				papers.GET("/:id/versions", controllers.GetVersions)

				// COI gate: file and check own declaration
				papers.POST("/coi", controllers.DeclareCOI)
				papers.GET("/:id/coi", controllers.GetCOIStatus)

				// Editorial panel views
				papers.GET("/:id/assignments", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetPaperAssignments)
				papers.GET("/:id/reviews", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetPaperReviews)
				papers.GET("/:id/cois", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetPaperCOIs)
				papers.GET("/:id/candidates", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetReviewerCandidates)
			}

			// Manuscript files
			documents := protected.Group("/documents")
			{
				documents.POST("/upload", controllers.UploadManuscript)
				documents.GET("/:id/download", controllers.DownloadManuscript)
			}

			// Reviewer workspace
			reviewer := protected.Group("/reviewer")
			{
				reviewer.GET("/assignments", controllers.GetMyAssignments)
				reviewer.GET("/assignments/:id", controllers.GetAssignment)
				reviewer.POST("/assignments/:id/status", controllers.UpdateAssignmentStatus)
				reviewer.POST("/assignments/:id/review", controllers.SubmitReview)
				reviewer.POST("/activity", controllers.LogReviewerActivity)
			}

			// Editorial workflow
			protected.POST("/assign-reviewer", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.AssignReviewer)
			protected.POST("/decision", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.Decide)

			// Issues
			issues := protected.Group("/issues")
			{
				issues.GET("", controllers.GetIssues)
				issues.GET("/:id", controllers.GetIssue)

				issues.POST("", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.CreateIssue)
				issues.POST("/:id/add-paper", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.AddPaperToIssue)
				issues.POST("/:id/publish", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.PublishIssue)
				issues.GET("/:id/candidates", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), controllers.GetIssueCandidates)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}
