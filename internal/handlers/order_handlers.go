package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order with its items.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	createdOrder, err := h.orderService.CreateOrder(req, actor)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order payload.", err.Error()))
		case errors.Is(err, services.ErrTableNotFound), errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Referenced resource not found.", err.Error()))
		case errors.Is(err, services.ErrTableOccupied):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table already has an active order.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, createdOrder)
}

// UpdateOrderStatus handles advancing an order through its lifecycle.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	var req services.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	order, err := h.orderService.TransitionStatus(orderID, req.Status, actor)
	if err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.TransitionStatus")
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status value.", err.Error()))
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		case errors.Is(err, services.ErrRoleForbidden):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Your role may not perform this transition.", err.Error()))
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInvalidTransition, "Status transition is not allowed.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update order status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrders handles fetching all orders with filters.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters

	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table_id format.", err.Error()))
			return
		}
		filters.TableID = &tableID
	}
	if status := c.Query("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid status filter.", "unknown status: "+status))
			return
		}
		filters.Status = &status
	}
	if date := c.Query("date"); date != "" {
		filters.Date = &date
	}
	filters.Page = 1
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be a positive integer"))
			return
		}
		filters.Page = page
	}
	filters.PageSize = 20
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be a positive integer"))
			return
		}
		filters.PageSize = pageSize
	}

	orders, totalCount, err := h.orderService.GetOrders(filters)
	if err != nil {
		utils.LogError(err, "GetOrders: Error from orderService.GetOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch orders.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      orders,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetOrderByID handles fetching a single order with its items.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetKitchenOrders handles the kitchen display view for the caller's role.
func (h *OrderHandler) GetKitchenOrders(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	orders, err := h.orderService.GetKitchenOrders(actor.Role)
	if err != nil {
		utils.LogError(err, "GetKitchenOrders: Error from orderService.GetKitchenOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch kitchen orders.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, orders)
}
