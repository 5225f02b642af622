package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap is a free-form JSON payload stored in a jsonb column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for JSONMap", src)
	}
}

// ActivityLog is one append-only audit record. Entries are written once,
// alongside the state mutation they document, and never updated or deleted.
// The description is rendered at write time so reports never have to
// reconstruct it from ids.
type ActivityLog struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	UserID      *int64    `json:"user_id,omitempty" db:"user_id"`
	UserName    *string   `json:"user_name,omitempty" db:"user_name"`
	TableID     *int64    `json:"table_id,omitempty" db:"table_id"`
	TableNumber *string   `json:"table_number,omitempty" db:"table_number"`
	OrderID     *int64    `json:"order_id,omitempty" db:"order_id"`
	Amount      *float64  `json:"amount,omitempty" db:"amount"`
	Details     JSONMap   `json:"details,omitempty" db:"details"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ActivityFilters defines the available filters for querying the audit trail.
// Start/End bound created_at inclusively; Today overrides them.
type ActivityFilters struct {
	Type    *string    `form:"type"`
	UserID  *int64     `form:"user_id"`
	TableID *int64     `form:"table_id"`
	Start   *time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00"`
	End     *time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00"`
	Today   bool       `form:"today"`
	Limit   int        `form:"limit"`
}
