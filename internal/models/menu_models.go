package models

import "time"

// MenuItem is a catalogue entry. Orders snapshot its price at order time, so
// editing a menu item never changes existing orders.
type MenuItem struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Price           float64   `json:"price" db:"price"`
	Category        string    `json:"category" db:"category"`
	Available       bool      `json:"available" db:"available"`
	PreparationTime int       `json:"preparation_time" db:"preparation_time"` // minutes
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
