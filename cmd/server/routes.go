package main

import (
	"github.com/advisorhub/backend/internal/config"
	"github.com/advisorhub/backend/internal/middleware"
	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public auth routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.PUT("/auth/password", svc.authHandler.ChangePassword)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Dashboard
			protected.GET("/dashboard/stats", svc.dashboardHandler.Stats)

			// Projects (read for both roles, write for teachers)
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.Get)

			teacherOnly := middleware.RoleRequired(models.RoleTeacher)
			protected.POST("/projects", teacherOnly, svc.projectHandler.Create)
			protected.PUT("/projects/:id", teacherOnly, svc.projectHandler.Update)
			protected.POST("/projects/:id/members", teacherOnly, svc.projectHandler.AddMember)
			protected.DELETE("/projects/:id/members/:studentId", teacherOnly, svc.projectHandler.RemoveMember)

			// Appointments
			studentOnly := middleware.RoleRequired(models.RoleStudent)
			protected.GET("/appointments", svc.appointmentHandler.List)
			protected.POST("/appointments", studentOnly, svc.appointmentHandler.Create)
			protected.GET("/appointments/:id", svc.appointmentHandler.Get)
			protected.PATCH("/appointments/:id/status", svc.appointmentHandler.UpdateStatus)
			protected.POST("/appointments/:id/notes", svc.appointmentHandler.AddNote)

			// Teacher schedules
			protected.GET("/appointments/teacher/:teacherId/schedule", svc.scheduleHandler.GetForTeacher)
			protected.PUT("/appointments/teacher/schedule", teacherOnly, svc.scheduleHandler.Replace)

			// Notifications
			protected.GET("/notifications", svc.notificationHandler.List)
			protected.PUT("/notifications/read-all", svc.notificationHandler.MarkAllRead)
			protected.PUT("/notifications/:id/read", svc.notificationHandler.MarkRead)

			// System logs (teachers only)
			protected.GET("/system-logs", teacherOnly, svc.systemLogHandler.List)
		}
	}
}
