package app

import (
	"database/sql"

	"go-workforce/internal/attendance"
	"go-workforce/internal/employee"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/rbac"
	"go-workforce/internal/rbac/infra"
	"go-workforce/internal/rule"
	"go-workforce/internal/schedule"
	"go-workforce/internal/shared/cache"
	"go-workforce/internal/shared/counter"
	"go-workforce/internal/shift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	redisCache := cache.NewRedisCache(rdb)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	ruleRepo := rule.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	rbacRepo := rbac.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Resolution collaborators ---
	directory := employee.NewDirectory(employeeRepo)
	ruleResolver := rule.NewResolver(ruleRepo, directory, redisCache)
	holidayResolver := attendance.NewHolidayResolver(scheduleRepo, ruleResolver)
	overtimeCalculator := attendance.NewOvertimeCalculator(scheduleRepo, holidayResolver)
	conflictValidator := schedule.NewConflictValidator(scheduleRepo, directory)
	autoCompletion := attendance.NewAutoCompletionEngine(attendanceRepo, scheduleRepo, holidayResolver)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, counterRepo, redisCache)
	ruleService := rule.NewService(db, ruleRepo, ruleResolver, redisCache)
	scheduleService := schedule.NewService(db, scheduleRepo, conflictValidator, redisCache)
	shiftService := shift.NewService(db, shiftRepo)
	attendanceService := attendance.NewService(
		db,
		attendanceRepo,
		outboxRepo,
		ruleResolver,
		overtimeCalculator,
		holidayResolver,
		directory,
		autoCompletion,
		redisCache,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	ruleHandler := rule.NewHandler(ruleService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	shiftHandler := shift.NewHandler(shiftService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		rule.RegisterRoutes(api, ruleHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		shift.RegisterRoutes(api, shiftHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
