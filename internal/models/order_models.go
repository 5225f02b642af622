package models

import "time"

// Order represents one table's active check. Status transitions run only
// through the order service; once the order reaches a terminal status the row
// is never mutated again.
type Order struct {
	ID          int64       `json:"id"`
	TableID     int64       `json:"table_id" db:"table_id"`
	Status      string      `json:"status" db:"status"`
	Total       float64     `json:"total" db:"total"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	Items       []OrderItem `json:"items"`

	// Joined from tables for list/detail views.
	TableNumber string `json:"table_number,omitempty"`
}

// OrderItem is one menu line within an order. UnitPrice is a snapshot taken
// at order time and stays fixed even if the live menu price changes later.
type OrderItem struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"order_id" db:"order_id"`
	MenuItemID int64     `json:"menu_item_id" db:"menu_item_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	UnitPrice  float64   `json:"price" db:"unit_price"`
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Joined from menu_items.
	MenuItemName     string `json:"menu_item_name,omitempty"`
	MenuItemCategory string `json:"menu_item_category,omitempty"`
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	TableID  *int64  `form:"table_id"`
	Status   *string `form:"status"`
	Date     *string `form:"date"` // Expected format YYYY-MM-DD
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}
