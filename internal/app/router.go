// internal/app/router.go
package app

import (
	domain "backdesk-service/internal/domain/assignment"
	assignmentHandler "backdesk-service/internal/handlers/assignment"
	authHandler "backdesk-service/internal/handlers/auth"
	eventsHandler "backdesk-service/internal/handlers/events"
	"backdesk-service/internal/middleware"
	"backdesk-service/internal/pkg/limiter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AssignmentHandler *assignmentHandler.AssignmentHandler
	AuthHandler       *authHandler.AuthHandler
	WSHandler         *eventsHandler.WebSocketHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RateLimiter       *limiter.RateLimiter
	Logger            *zap.Logger
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/refresh", h.AuthHandler.Refresh)
	}

	throttle := func(action domain.Action) gin.HandlerFunc {
		return middleware.RateLimitMiddleware(h.RateLimiter, string(action), logger)
	}

	// ==================== Customer Assignments ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		// Transitions
		customers.POST("/:id/claim", throttle(domain.ActionClaim), h.AssignmentHandler.Claim)
		customers.POST("/:id/assign", throttle(domain.ActionAssign), h.AssignmentHandler.Assign)
		customers.POST("/:id/reassign", throttle(domain.ActionReassign), h.AssignmentHandler.Reassign)
		customers.POST("/:id/transfer", throttle(domain.ActionTransfer), h.AssignmentHandler.Transfer)
		customers.POST("/:id/unassign", throttle(domain.ActionUnassign), h.AssignmentHandler.Unassign)

		// Reads
		customers.GET("/:id/assignment", h.AssignmentHandler.GetOwnership)
		customers.GET("/:id/assignment/history", h.AssignmentHandler.CustomerHistory)
	}

	// ==================== Audit Trail ====================
	assignments := api.Group("/assignments")
	assignments.Use(h.AuthMiddleware.Auth())
	{
		assignments.GET("/history", h.AssignmentHandler.History)
	}

	// ==================== Assistants ====================
	assistants := api.Group("/assistants")
	assistants.Use(h.AuthMiddleware.Auth())
	{
		assistants.GET("/assignable", h.AssignmentHandler.Assignable)
		assistants.GET("/:id/workload", h.AssignmentHandler.Workload)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole("admin"))
	{
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
