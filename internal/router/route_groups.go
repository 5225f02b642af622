package router

import (
	"net/http"

	"restaurant_pos_backend/internal/handlers"
	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes wires the authenticated session endpoints.
func SetupAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/me", func(c *gin.Context) {
			actor := middleware.ActorFromContext(c)
			c.JSON(http.StatusOK, gin.H{
				"user_id": actor.UserID,
				"name":    actor.UserName,
				"role":    actor.Role,
			})
		})
	}
}

// SetupUserRoutes wires staff account management; admins only.
func SetupUserRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	users := rg.Group("/users")
	{
		users.GET("",
			middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager),
			h.GetUsers)

		admin := users.Group("")
		admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			admin.POST("", h.CreateUser)
			admin.GET("/:id", h.GetUserByID)
			admin.PUT("/:id", h.UpdateUser)
			admin.DELETE("/:id", h.DeleteUser)
		}
	}
}

// SetupTableRoutes wires the floor plan. Everyone authenticated may read;
// layout changes are for admins and managers; status changes also belong to
// the floor staff who clean and reserve tables.
func SetupTableRoutes(rg *gin.RouterGroup, h *handlers.TableHandler) {
	tables := rg.Group("/tables")
	{
		tables.GET("", h.GetTables)
		tables.GET("/:id", h.GetTableByID)
		tables.PATCH("/:id/status",
			middleware.RoleAuthMiddleware(models.RoleWaiter, models.RoleAdmin, models.RoleManager),
			h.UpdateTableStatus)
		tables.DELETE("/:id",
			middleware.RoleAuthMiddleware(models.RoleAdmin),
			h.DeleteTable)

		manage := tables.Group("")
		manage.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
		{
			manage.POST("", h.CreateTable)
			manage.PUT("/:id", h.UpdateTable)
		}
	}

	rg.GET("/cashier/tables",
		middleware.RoleAuthMiddleware(models.RoleCashier, models.RoleAdmin, models.RoleManager),
		h.GetCashierTables)
}

// SetupMenuRoutes wires the menu catalogue; reads are open to all staff.
func SetupMenuRoutes(rg *gin.RouterGroup, h *handlers.MenuHandler) {
	menu := rg.Group("/menu")
	{
		menu.GET("", h.GetMenuItems)
		menu.GET("/:id", h.GetMenuItemByID)

		admin := menu.Group("")
		admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
		{
			admin.POST("", h.CreateMenuItem)
			admin.PUT("/:id", h.UpdateMenuItem)
			admin.DELETE("/:id", h.DeleteMenuItem)
		}
	}
}

// SetupOrderRoutes wires the order lifecycle. Status transitions stay open to
// every authenticated role: the order service applies the per-role transition
// policy itself so that a forbidden attempt is answered with the precise
// reason instead of a generic route rejection.
func SetupOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group("/orders")
	{
		orders.POST("",
			middleware.RoleAuthMiddleware(models.RoleWaiter, models.RoleAdmin, models.RoleManager),
			h.CreateOrder)
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrderByID)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
	}

	rg.GET("/kitchen/orders", h.GetKitchenOrders)
}

// SetupPaymentRoutes wires checkout; collecting money is the cashier's job.
func SetupPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	payments := rg.Group("/payments")
	{
		payments.POST("",
			middleware.RoleAuthMiddleware(models.RoleCashier, models.RoleAdmin, models.RoleManager),
			h.CompletePayment)
		payments.GET("",
			middleware.RoleAuthMiddleware(models.RoleCashier, models.RoleAdmin, models.RoleManager),
			h.GetPayments)
	}
}

// SetupActivityRoutes wires the audit trail. Reads are management only;
// appends are open to all staff so clients can record system-originated
// events (actor identity still comes from the token).
func SetupActivityRoutes(rg *gin.RouterGroup, h *handlers.ActivityHandler) {
	rg.GET("/activities",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager),
		h.GetActivities)
	rg.POST("/activities", h.CreateActivity)
}

// SetupReportRoutes wires reporting; management only.
func SetupReportRoutes(rg *gin.RouterGroup, h *handlers.ReportHandler) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleManager))
	{
		reports.GET("/daily", h.GetDailySummary)
		reports.GET("/summary", h.GetSummary)
	}
}
