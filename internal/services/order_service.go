package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/notifier"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/pkg/utils"
)

// Custom Errors shared across the order/payment flow.
var (
	ErrValidation        = errors.New("validation failed")
	ErrOrderNotFound     = errors.New("order not found")
	ErrTableNotFound     = errors.New("table not found")
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrTableOccupied     = errors.New("table already has an active order")
	ErrRoleForbidden     = errors.New("role is not permitted to perform this transition")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// statusSuccessor maps each non-terminal order status to the only status that
// may structurally follow it. Cancellation is handled separately: it is
// reachable from any non-terminal status.
var statusSuccessor = map[string]string{
	models.OrderStatusPending:   models.OrderStatusPreparing,
	models.OrderStatusPreparing: models.OrderStatusReady,
	models.OrderStatusReady:     models.OrderStatusCompleted,
}

// isStructuralTransition reports whether moving from one status to the other
// is a legal move of the
// state machine, ignoring who is asking.
func isStructuralTransition(from, to string) bool {
	if to == models.OrderStatusCancelled {
		return !models.IsTerminalOrderStatus(from)
	}
	return statusSuccessor[from] == to
}

// roleMayTransition applies the authorization table: cashiers (and unknown
// roles) may never transition; waiters may only mark a ready order as
// completed; admin, kitchen and manager may perform any structural
// transition. Manager rights mirror admin pending product confirmation.
func roleMayTransition(role, from, to string) bool {
	switch models.NormalizeRole(role) {
	case models.RoleAdmin, models.RoleKitchen, models.RoleManager:
		return true
	case models.RoleWaiter:
		return from == models.OrderStatusReady && to == models.OrderStatusCompleted
	default:
		return false
	}
}

// --- Data Transfer Objects (DTOs) ---

// CreateOrderItemRequest is one menu line of a new order. Price is the unit
// price snapshot; when omitted the live menu price is used.
type CreateOrderItemRequest struct {
	MenuItemID int64   `json:"menu_item_id" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Price      float64 `json:"price"`
	Notes      string  `json:"notes"`
}

// CreateOrderRequest is used for creating a new order.
type CreateOrderRequest struct {
	TableID int64                    `json:"table_id" binding:"required"`
	Items   []CreateOrderItemRequest `json:"items" binding:"required,dive"`
}

// TransitionStatusRequest is used for advancing an order's status.
type TransitionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- OrderService Interface ---

type OrderService interface {
	CreateOrder(req CreateOrderRequest, actor models.Actor) (*models.Order, error)
	TransitionStatus(orderID int64, targetStatus string, actor models.Actor) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	// GetKitchenOrders derives the kitchen display view for the given role.
	GetKitchenOrders(role string) ([]models.Order, error)
}

// --- orderService Implementation ---

type orderService struct {
	orderRepo   repositories.OrderRepository
	tableRepo   repositories.TableRepository
	menuRepo    repositories.MenuRepository
	activitySvc ActivityService
	notifier    notifier.Notifier
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	tr repositories.TableRepository,
	mr repositories.MenuRepository,
	as ActivityService,
	n notifier.Notifier,
) OrderService {
	return &orderService{
		orderRepo:   or,
		tableRepo:   tr,
		menuRepo:    mr,
		activitySvc: as,
		notifier:    n,
	}
}

// --- Method Implementations ---

func (s *orderService) CreateOrder(req CreateOrderRequest, actor models.Actor) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, itemReq := range req.Items {
		if itemReq.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity for menu item %d must be at least 1", ErrValidation, itemReq.MenuItemID)
		}
		if itemReq.Price < 0 {
			return nil, fmt.Errorf("%w: price for menu item %d must not be negative", ErrValidation, itemReq.MenuItemID)
		}
	}

	table, err := s.tableRepo.GetTableByID(req.TableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: table %d", ErrTableNotFound, req.TableID)
		}
		return nil, fmt.Errorf("failed to fetch table %d: %w", req.TableID, err)
	}
	// A table carries at most one non-terminal order; the reference is
	// cleared when payment is recorded.
	if table.CurrentOrderID != nil {
		return nil, fmt.Errorf("%w: table %s (order %d)", ErrTableOccupied, table.Number, *table.CurrentOrderID)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		menuItem, err := s.menuRepo.GetMenuItemByID(itemReq.MenuItemID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", ErrMenuItemNotFound, itemReq.MenuItemID)
			}
			return nil, fmt.Errorf("failed to fetch menu item %d: %w", itemReq.MenuItemID, err)
		}

		unitPrice := itemReq.Price
		if unitPrice == 0 {
			unitPrice = menuItem.Price
		}
		total += unitPrice * float64(itemReq.Quantity)

		item := models.OrderItem{
			MenuItemID:       itemReq.MenuItemID,
			Quantity:         itemReq.Quantity,
			UnitPrice:        unitPrice,
			MenuItemName:     menuItem.Name,
			MenuItemCategory: menuItem.Category,
		}
		if itemReq.Notes != "" {
			notes := itemReq.Notes
			item.Notes = &notes
		}
		items = append(items, item)
	}

	now := time.Now()
	order := &models.Order{
		TableID:     req.TableID,
		Status:      models.OrderStatusPending,
		Total:       total,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       items,
		TableNumber: table.Number,
	}

	if _, err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order record: %w", err)
	}

	if err := s.tableRepo.SetCurrentOrder(table.ID, &order.ID, models.TableStatusOccupied, now); err != nil {
		return nil, fmt.Errorf("failed to attach order %d to table %d: %w", order.ID, table.ID, err)
	}

	// The order and table mutations are committed; a failed audit write is a
	// degraded success, reported through process logs only.
	if err := s.activitySvc.LogOrderCreated(actor, order.ID, table.ID, table.Number, total); err != nil {
		utils.LogError(err, fmt.Sprintf("CreateOrder: audit write failed for order %d", order.ID))
	}

	return order, nil
}

func (s *orderService) TransitionStatus(orderID int64, targetStatus string, actor models.Actor) (*models.Order, error) {
	if !models.IsValidOrderStatus(targetStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, targetStatus)
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for status update: %w", err)
	}

	// Check order matters: a terminal order rejects every caller with a
	// transition error; only then is the role examined, so "wrong role" and
	// "wrong transition" stay distinguishable in tests and logs.
	if models.IsTerminalOrderStatus(order.Status) {
		return nil, fmt.Errorf("%w: order %d is %s", ErrInvalidTransition, orderID, order.Status)
	}
	if !roleMayTransition(actor.Role, order.Status, targetStatus) {
		return nil, fmt.Errorf("%w: role %q may not move order %d from %s to %s",
			ErrRoleForbidden, actor.Role, orderID, order.Status, targetStatus)
	}
	if !isStructuralTransition(order.Status, targetStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, targetStatus)
	}

	now := time.Now()
	var completedAt *time.Time
	if targetStatus == models.OrderStatusCompleted {
		completedAt = &now
	}

	err = s.orderRepo.UpdateOrderStatus(orderID, targetStatus, order.Status, now, completedAt)
	if err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			// Another caller moved the order first; the requested transition
			// is no longer valid against the current state.
			return nil, fmt.Errorf("%w: order %d changed concurrently", ErrInvalidTransition, orderID)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	oldStatus := order.Status
	order.Status = targetStatus
	order.UpdatedAt = now
	order.CompletedAt = completedAt

	var auditErr error
	if targetStatus == models.OrderStatusCompleted {
		auditErr = s.activitySvc.LogOrderServiceCompleted(actor, order.ID, order.TableID, order.TableNumber, oldStatus)
	} else {
		auditErr = s.activitySvc.LogOrderStatusChanged(actor, order.ID, order.TableID, order.TableNumber, oldStatus, targetStatus)
	}
	if auditErr != nil {
		// Degraded success: the status change is committed and stands.
		utils.LogError(auditErr, fmt.Sprintf("TransitionStatus: audit write failed for order %d", order.ID))
	}

	if targetStatus == models.OrderStatusReady {
		// Best-effort: the waiters' notification must not affect the result.
		_ = s.notifier.Publish(context.Background(), notifier.OrderReady(order.ID, order.TableNumber))
	}

	return order, nil
}

func (s *orderService) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders, totalCount, err := s.orderRepo.GetOrders(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, totalCount, nil
}

func (s *orderService) GetOrderByID(orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID from repository: %w", err)
	}

	items, err := s.orderRepo.GetOrderItemsByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items for order %d: %w", orderID, err)
	}
	order.Items = items
	return order, nil
}

// GetKitchenOrders returns non-completed orders that contain at least one
// kitchen-category item. Waiters see only orders already ready (their single
// actionable state); cashiers and unrecognized roles see an empty view rather
// than an error.
func (s *orderService) GetKitchenOrders(role string) ([]models.Order, error) {
	normalized := models.NormalizeRole(role)
	if normalized == "" || normalized == models.RoleCashier {
		return []models.Order{}, nil
	}

	open, err := s.orderRepo.GetOpenOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get open orders: %w", err)
	}

	kitchenOrders := []models.Order{}
	for _, order := range open {
		hasKitchenItem := false
		for _, item := range order.Items {
			if models.KitchenCategories[item.MenuItemCategory] {
				hasKitchenItem = true
				break
			}
		}
		if !hasKitchenItem {
			continue
		}
		if normalized == models.RoleWaiter && order.Status != models.OrderStatusReady {
			continue
		}
		kitchenOrders = append(kitchenOrders, order)
	}
	return kitchenOrders, nil
}
