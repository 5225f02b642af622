package models

import "time"

// ReportSummary carries the daily metrics derived from the activity log.
// Sales come from payment_received entries, order counts from order_created
// entries; there is no second computation path.
type ReportSummary struct {
	Start             time.Time     `json:"start"`
	End               time.Time     `json:"end"`
	TotalSales        float64       `json:"total_sales"`
	TotalOrders       int           `json:"total_orders"`
	AverageOrderValue float64       `json:"average_order_value"`
	StatusChanges     map[string]int `json:"status_changes"`
	Activities        []ActivityLog `json:"activities"`
}
