package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"

	"github.com/lib/pq"
)

// TableRepository defines the interface for table-related database operations.
type TableRepository interface {
	CreateTable(table *models.Table) (int64, error)
	GetTableByID(tableID int64) (*models.Table, error)
	GetTables() ([]models.Table, error)
	UpdateTable(table *models.Table) error
	UpdateTableStatus(tableID int64, status string, updatedAt time.Time) error
	// SetCurrentOrder attaches (or, with nil, clears) the table's active order
	// reference and moves the table to the given status in one statement.
	SetCurrentOrder(tableID int64, orderID *int64, status string, updatedAt time.Time) error
	// GetOccupiedTablesWithOrders returns the cashier view: occupied tables
	// that carry a current order, order header included.
	GetOccupiedTablesWithOrders() ([]models.Table, error)
	DeleteTable(tableID int64) error
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) CreateTable(table *models.Table) (int64, error) {
	if table.CreatedAt.IsZero() {
		table.CreatedAt = time.Now()
	}
	if table.UpdatedAt.IsZero() {
		table.UpdatedAt = table.CreatedAt
	}
	query := `INSERT INTO tables (number, capacity, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`
	err := r.db.QueryRow(query,
		table.Number, table.Capacity, table.Status, table.CreatedAt, table.UpdatedAt,
	).Scan(&table.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%w (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating table: %v", ErrDatabaseError, err)
	}
	return table.ID, nil
}

func (r *tableRepository) GetTableByID(tableID int64) (*models.Table, error) {
	table := &models.Table{}
	query := `SELECT id, number, capacity, status, current_order_id, created_at, updated_at
	          FROM tables
	          WHERE id = $1`
	err := r.db.QueryRow(query, tableID).Scan(
		&table.ID, &table.Number, &table.Capacity, &table.Status,
		&table.CurrentOrderID, &table.CreatedAt, &table.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return table, nil
}

func (r *tableRepository) GetTables() ([]models.Table, error) {
	tables := []models.Table{}
	query := `SELECT id, number, capacity, status, current_order_id, created_at, updated_at
	          FROM tables
	          ORDER BY number`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Table
		err := rows.Scan(&t.ID, &t.Number, &t.Capacity, &t.Status, &t.CurrentOrderID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *tableRepository) UpdateTable(table *models.Table) error {
	table.UpdatedAt = time.Now()
	query := `UPDATE tables SET number = $1, capacity = $2, status = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.Exec(query, table.Number, table.Capacity, table.Status, table.UpdatedAt, table.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating table ID %d: %v", ErrDatabaseError, table.ID, err)
	}
	return checkRowsAffected(result, table.ID, "table update")
}

func (r *tableRepository) UpdateTableStatus(tableID int64, status string, updatedAt time.Time) error {
	query := `UPDATE tables SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(query, status, updatedAt, tableID)
	if err != nil {
		return fmt.Errorf("%w: updating table status for ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return checkRowsAffected(result, tableID, "table status update")
}

func (r *tableRepository) SetCurrentOrder(tableID int64, orderID *int64, status string, updatedAt time.Time) error {
	query := `UPDATE tables SET current_order_id = $1, status = $2, updated_at = $3 WHERE id = $4`
	result, err := r.db.Exec(query, orderID, status, updatedAt, tableID)
	if err != nil {
		return fmt.Errorf("%w: setting current order for table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return checkRowsAffected(result, tableID, "set current order")
}

func (r *tableRepository) GetOccupiedTablesWithOrders() ([]models.Table, error) {
	tables := []models.Table{}
	query := `SELECT t.id, t.number, t.capacity, t.status, t.current_order_id, t.created_at, t.updated_at,
	                 o.id, o.table_id, o.status, o.total, o.created_at, o.updated_at, o.completed_at
	          FROM tables t
	          JOIN orders o ON t.current_order_id = o.id
	          WHERE t.status = $1
	          ORDER BY t.number`
	rows, err := r.db.Query(query, models.TableStatusOccupied)
	if err != nil {
		return nil, fmt.Errorf("%w: querying occupied tables: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Table
		var o models.Order
		err := rows.Scan(
			&t.ID, &t.Number, &t.Capacity, &t.Status, &t.CurrentOrderID, &t.CreatedAt, &t.UpdatedAt,
			&o.ID, &o.TableID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt, &o.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning occupied table: %v", ErrDatabaseError, err)
		}
		o.TableNumber = t.Number
		t.CurrentOrder = &o
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating occupied table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}

func (r *tableRepository) DeleteTable(tableID int64) error {
	result, err := r.db.Exec(`DELETE FROM tables WHERE id = $1`, tableID)
	if err != nil {
		return fmt.Errorf("%w: deleting table ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return checkRowsAffected(result, tableID, "table delete")
}

func checkRowsAffected(result sql.Result, id int64, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for %s ID %d: %v", ErrDatabaseError, op, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
