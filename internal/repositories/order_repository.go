package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_pos_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	// CreateOrder inserts the order together with its items in one
	// transaction and returns the generated order id.
	CreateOrder(order *models.Order) (int64, error)
	GetOrderByID(orderID int64) (*models.Order, error)
	GetOrders(filters models.OrderFilters) ([]models.Order, int, error)
	// GetOpenOrders returns non-terminal orders, items included, oldest
	// first.
	GetOpenOrders() ([]models.Order, error)
	// UpdateOrderStatus sets the new status only when the row still holds
	// expectedStatus; a raced or missing row yields ErrStaleStatus/ErrNotFound.
	UpdateOrderStatus(orderID int64, newStatus, expectedStatus string, updatedAt time.Time, completedAt *time.Time) error

	GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(order *models.Order) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: starting order transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}

	query := `INSERT INTO orders (table_id, status, total, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err = tx.QueryRow(query,
		order.TableID, order.Status, order.Total, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}

	if err := insertOrderItems(tx, order); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing order transaction: %v", ErrDatabaseError, err)
	}
	return order.ID, nil
}

func insertOrderItems(ex SQLExecutor, order *models.Order) error {
	itemQuery := `INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, notes, created_at)
	              VALUES ($1, $2, $3, $4, $5, $6)
	              RETURNING id`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = order.CreatedAt
		}
		err := ex.QueryRow(itemQuery,
			item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.Notes, item.CreatedAt,
		).Scan(&item.ID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" {
				return fmt.Errorf("%w: creating order item (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
			}
			return fmt.Errorf("%w: creating order item (menu_item_id: %d): %v", ErrDatabaseError, item.MenuItemID, err)
		}
	}
	return nil
}

func (r *orderRepository) GetOrderByID(orderID int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT o.id, o.table_id, o.status, o.total, o.created_at, o.updated_at, o.completed_at,
	                 t.number as table_number
	          FROM orders o
	          JOIN tables t ON o.table_id = t.id
	          WHERE o.id = $1`
	err := r.db.QueryRow(query, orderID).Scan(
		&order.ID, &order.TableID, &order.Status, &order.Total,
		&order.CreatedAt, &order.UpdatedAt, &order.CompletedAt,
		&order.TableNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order by ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return order, nil
}

func (r *orderRepository) GetOrders(filters models.OrderFilters) ([]models.Order, int, error) {
	orders := []models.Order{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT
            o.id, o.table_id, o.status, o.total, o.created_at, o.updated_at, o.completed_at,
            t.number as table_number,
            COUNT(*) OVER() as total_count
        FROM orders o
        JOIN tables t ON o.table_id = t.id
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.TableID != nil {
		conditions = append(conditions, fmt.Sprintf("o.table_id = $%d", argCounter))
		args = append(args, *filters.TableID)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}
	if filters.Date != nil && *filters.Date != "" {
		parsedDate, err := time.Parse("2006-01-02", *filters.Date)
		if err == nil {
			startOfDay := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, parsedDate.Location())
			endOfDay := startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			conditions = append(conditions, fmt.Sprintf("o.created_at BETWEEN $%d AND $%d", argCounter, argCounter+1))
			args = append(args, startOfDay, endOfDay)
			argCounter += 2
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, filters.PageSize)
		argCounter++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCounter))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.TableID, &o.Status, &o.Total,
			&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
			&o.TableNumber,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, totalCount, nil
}

func (r *orderRepository) GetOpenOrders() ([]models.Order, error) {
	orders := []models.Order{}
	query := `SELECT o.id, o.table_id, o.status, o.total, o.created_at, o.updated_at, o.completed_at,
	                 t.number as table_number
	          FROM orders o
	          JOIN tables t ON o.table_id = t.id
	          WHERE o.status NOT IN ($1, $2)
	          ORDER BY o.created_at ASC`
	rows, err := r.db.Query(query, models.OrderStatusCompleted, models.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("%w: querying open orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.TableID, &o.Status, &o.Total,
			&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
			&o.TableNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning open order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating open order rows: %v", ErrDatabaseError, err)
	}

	for i := range orders {
		items, err := r.GetOrderItemsByOrderID(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) UpdateOrderStatus(orderID int64, newStatus, expectedStatus string, updatedAt time.Time, completedAt *time.Time) error {
	query := `UPDATE orders SET status = $1, updated_at = $2, completed_at = COALESCE($3, completed_at)
	          WHERE id = $4 AND status = $5`
	result, err := r.db.Exec(query, newStatus, updatedAt, completedAt, orderID, expectedStatus)
	if err != nil {
		return fmt.Errorf("%w: updating order status for ID %d: %v", ErrDatabaseError, orderID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for order status update ID %d: %v", ErrDatabaseError, orderID, err)
	}
	if rowsAffected == 0 {
		// Either the order is gone or another caller moved it first.
		if _, lookupErr := r.GetOrderByID(orderID); errors.Is(lookupErr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrStaleStatus
	}
	return nil
}

func (r *orderRepository) GetOrderItemsByOrderID(orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	query := `
		SELECT
		    oi.id, oi.order_id, oi.menu_item_id, oi.quantity, oi.unit_price,
		    oi.notes, oi.created_at,
		    mi.name as item_name, mi.category as item_category
		FROM order_items oi
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.Quantity, &item.UnitPrice,
			&item.Notes, &item.CreatedAt,
			&item.MenuItemName, &item.MenuItemCategory,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item for order ID %d: %v", ErrDatabaseError, orderID, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows for order ID %d: %v", ErrDatabaseError, orderID, err)
	}
	return items, nil
}
