package models

import "time"

// Table is a physical seating unit. CurrentOrderID is a weak reference to at
// most one non-terminal order; it is set on order creation and cleared when
// the payment for the order is recorded.
type Table struct {
	ID             int64     `json:"id"`
	Number         string    `json:"number" db:"number"`
	Capacity       int       `json:"capacity" db:"capacity"`
	Status         string    `json:"status" db:"status"`
	CurrentOrderID *int64    `json:"current_order_id,omitempty" db:"current_order_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// CurrentOrder is populated for the cashier view.
	CurrentOrder *Order `json:"current_order,omitempty"`
}
