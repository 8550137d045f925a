package schedule

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("/:id", middleware.RBACAuthorize(rbacService, "schedule", "read"), h.GetByID)
		schedules.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "schedule", "read"), h.GetByEmployee)
		schedules.POST("", middleware.RBACAuthorize(rbacService, "schedule", "create"), h.Create)
		schedules.PUT("/:id", middleware.RBACAuthorize(rbacService, "schedule", "update"), h.Update)
		schedules.DELETE("/:id", middleware.RBACAuthorize(rbacService, "schedule", "delete"), h.Delete)
	}
}
