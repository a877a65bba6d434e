package app

import (
	"database/sql"
	"path/filepath"

	"github.com/skylift/workforce/internal/assignment"
	"github.com/skylift/workforce/internal/availability"
	"github.com/skylift/workforce/internal/balance"
	"github.com/skylift/workforce/internal/calendar"
	"github.com/skylift/workforce/internal/employee"
	"github.com/skylift/workforce/internal/leave"
	"github.com/skylift/workforce/internal/messaging/kafka"
	"github.com/skylift/workforce/internal/middleware"
	"github.com/skylift/workforce/internal/notification"
	"github.com/skylift/workforce/internal/rbac"
	"github.com/skylift/workforce/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	assignmentRepo := assignment.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	calendarRepo := calendar.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	balanceService := balance.NewService(balanceRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, calendarRepo, balanceService, outboxRepo)
	availabilityService := availability.NewService(employeeRepo, leaveRepo, assignmentRepo, calendarRepo)

	// --- Handlers ---
	availabilityHandler := availability.NewHandler(availabilityService, rdb)
	balanceHandler := balance.NewHandler(balanceService)
	calendarHandler := calendar.NewHandler(calendarRepo)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationRepo)

	// --- Global middleware ---
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		availability.RegisterRoutes(api, availabilityHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
	}

	return nil
}
