package rbac

import (
	"go-workforce/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", h.Enforce)

		group.GET("/roles", middleware.RBACAuthorize(service, "role", "read"), h.ListRoles)
		group.GET("/roles/:id", middleware.RBACAuthorize(service, "role", "read"), h.GetRole)
		group.POST("/roles", middleware.RBACAuthorize(service, "role", "manage"), h.CreateRole)
		group.PUT("/roles/:id", middleware.RBACAuthorize(service, "role", "manage"), h.UpdateRole)
		group.DELETE("/roles/:id", middleware.RBACAuthorize(service, "role", "manage"), h.DeleteRole)
		group.PUT("/roles/:id/permissions", middleware.RBACAuthorize(service, "role", "manage"), h.UpdateRolePermissions)

		group.GET("/permissions", middleware.RBACAuthorize(service, "role", "manage"), h.ListPermissions)

		group.POST("/assignments", middleware.RBACAuthorize(service, "role", "manage"), h.AssignRole)
		group.DELETE("/assignments", middleware.RBACAuthorize(service, "role", "manage"), h.UnassignRole)
	}
}
