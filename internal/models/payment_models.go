package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment records one collected check.
type Payment struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id" db:"order_id"`
	TableID     int64     `json:"table_id" db:"table_id"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	Status      string    `json:"status" db:"status"`
	ProcessedBy int64     `json:"processed_by" db:"processed_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
