package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-leaveflow/internal/assignment"
	"go-leaveflow/internal/auth"
	"go-leaveflow/internal/balance"
	"go-leaveflow/internal/blackout"
	"go-leaveflow/internal/hierarchy"
	"go-leaveflow/internal/leave"
	"go-leaveflow/internal/leavetype"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/notification"
	"go-leaveflow/internal/rbac"
	"go-leaveflow/internal/rbac/infra"
	"go-leaveflow/internal/shared/counter"
	"go-leaveflow/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	hierarchyRepo := hierarchy.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	blackoutRepo := blackout.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Approval engine parts ---
	resolver := assignment.NewResolver(assignmentRepo)
	blackoutEnforcer := blackout.NewEnforcer(blackoutRepo)
	ledger := balance.NewLedger(balanceRepo)
	planner := leave.NewPlanner(resolver, userRepo)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService)
	userService := user.NewService(userRepo, rdb)
	hierarchyService := hierarchy.NewService(db, hierarchyRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, rdb)
	assignmentService := assignment.NewService(db, assignmentRepo)
	blackoutService := blackout.NewService(db, blackoutRepo)
	balanceService := balance.NewService(db, balanceRepo)
	notificationService := notification.NewService(notificationRepo)
	leaveService := leave.NewService(
		db, leaveRepo, leaveTypeRepo, userRepo,
		blackoutEnforcer, planner, resolver, ledger,
		counterRepo, outboxRepo,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	hierarchyHandler := hierarchy.NewHandler(hierarchyService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	blackoutHandler := blackout.NewHandler(blackoutService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService)
		hierarchy.RegisterRoutes(api, hierarchyHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		assignment.RegisterRoutes(api, assignmentHandler, rbacService)
		blackout.RegisterRoutes(api, blackoutHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler)
	}

	rbac.RegisterRoutes(router, rbacHandler)

	return nil
}
