package router

import (
	"database/sql"

	"restaurant_pos_backend/internal/handlers"
	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/notifier"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, n notifier.Notifier) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// Initialize Services
	activityService := services.NewActivityService(activityRepo)
	authService := services.NewAuthService(userRepo, activityService)
	tableService := services.NewTableService(tableRepo, activityService)
	menuService := services.NewMenuService(menuRepo)
	orderService := services.NewOrderService(orderRepo, tableRepo, menuRepo, activityService, n)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, tableRepo, activityService, n)
	reportService := services.NewReportService(activityService)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	tableHandler := handlers.NewTableHandler(tableService)
	menuHandler := handlers.NewMenuHandler(menuService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	activityHandler := handlers.NewActivityHandler(activityService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public routes
	apiV1.POST("/auth/login", authHandler.Login)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthRoutes(authenticated, authHandler)
		SetupUserRoutes(authenticated, authHandler)
		SetupTableRoutes(authenticated, tableHandler)
		SetupMenuRoutes(authenticated, menuHandler)
		SetupOrderRoutes(authenticated, orderHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupActivityRoutes(authenticated, activityHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
