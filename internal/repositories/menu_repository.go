package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// MenuRepository defines the interface for menu catalogue operations.
type MenuRepository interface {
	CreateMenuItem(item *models.MenuItem) (int64, error)
	GetMenuItemByID(itemID int64) (*models.MenuItem, error)
	GetMenuItems(category *string, onlyAvailable bool) ([]models.MenuItem, error)
	UpdateMenuItem(item *models.MenuItem) error
	DeleteMenuItem(itemID int64) error
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateMenuItem(item *models.MenuItem) (int64, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	query := `INSERT INTO menu_items (name, description, price, category, available, preparation_time, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	err := r.db.QueryRow(query,
		item.Name, item.Description, item.Price, item.Category,
		item.Available, item.PreparationTime, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating menu item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *menuRepository) GetMenuItemByID(itemID int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `SELECT id, name, description, price, category, available, preparation_time, created_at, updated_at
	          FROM menu_items
	          WHERE id = $1`
	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
		&item.Available, &item.PreparationTime, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting menu item by ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return item, nil
}

func (r *menuRepository) GetMenuItems(category *string, onlyAvailable bool) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	query := `SELECT id, name, description, price, category, available, preparation_time, created_at, updated_at
	          FROM menu_items`
	var conditions []string
	var args []interface{}
	if category != nil && *category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, *category)
	}
	if onlyAvailable {
		conditions = append(conditions, fmt.Sprintf("available = $%d", len(args)+1))
		args = append(args, true)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY category, name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying menu items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.Category,
			&item.Available, &item.PreparationTime, &item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning menu item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating menu item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *menuRepository) UpdateMenuItem(item *models.MenuItem) error {
	item.UpdatedAt = time.Now()
	query := `UPDATE menu_items
	          SET name = $1, description = $2, price = $3, category = $4, available = $5, preparation_time = $6, updated_at = $7
	          WHERE id = $8`
	result, err := r.db.Exec(query,
		item.Name, item.Description, item.Price, item.Category,
		item.Available, item.PreparationTime, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating menu item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	return checkRowsAffected(result, item.ID, "menu item update")
}

func (r *menuRepository) DeleteMenuItem(itemID int64) error {
	result, err := r.db.Exec(`DELETE FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%w: deleting menu item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return checkRowsAffected(result, itemID, "menu item delete")
}
