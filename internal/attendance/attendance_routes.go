package attendance

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"

	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.POST("/punch",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.Idempotency(rdb),
			h.SubmitPunch)
		attendance.POST("/makeup",
			middleware.RBACAuthorize(rbacService, "attendance", "update"),
			h.ApplyMakeupPunch)
		attendance.POST("/recalculate",
			middleware.RBACAuthorize(rbacService, "attendance", "update"),
			h.RecalculateRange)
		attendance.POST("/backfill",
			middleware.RBACAuthorize(rbacService, "attendance", "update"),
			h.Backfill)
		attendance.GET("/today/:employeeId",
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetToday)
		attendance.GET("/employee/:employeeId",
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.GetByEmployee)
		attendance.GET("/day-status/:employeeId",
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.DayStatus)
		attendance.GET("/abnormal",
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			h.ListAbnormal)
	}
}
