package rule

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	rules := r.Group("/attendance-rules")
	rules.Use(middleware.AuthMiddleware())
	{
		rules.GET("", middleware.RBACAuthorize(rbacService, "attendance_rule", "read"), h.GetAll)
		rules.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance_rule", "read"), h.GetByID)
		rules.GET("/resolve/:employeeId", middleware.RBACAuthorize(rbacService, "attendance_rule", "read"), h.Resolve)
		rules.POST("", middleware.RBACAuthorize(rbacService, "attendance_rule", "create"), h.Create)
		rules.PUT("/:id", middleware.RBACAuthorize(rbacService, "attendance_rule", "update"), h.Update)
		rules.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance_rule", "delete"), h.Delete)
	}
}
