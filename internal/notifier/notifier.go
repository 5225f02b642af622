// Package notifier dispatches best-effort, role-scoped events (order ready,
// table needs cleaning) to the staff notification channel. Delivery failures
// are logged and returned, never escalated: a lost notification must not roll
// back the state change that produced it.
package notifier

import (
	"context"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// Event is the payload published for every notification.
type Event struct {
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	OrderID     *int64   `json:"order_id,omitempty"`
	TableID     *int64   `json:"table_id,omitempty"`
	TableNumber string   `json:"table_number"`
	TargetRoles []string `json:"target_roles"`
	CreatedAt   string   `json:"created_at"`
}

// Notifier publishes events to whatever transport backs staff notifications.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// OrderReady builds the "order ready" event targeted at waiters.
func OrderReady(orderID int64, tableNumber string) Event {
	return Event{
		Kind:        models.NotificationOrderReady,
		Title:       "Sipariş Hazır!",
		Message:     fmt.Sprintf("Masa %s siparişi hazır ve servis bekliyor", tableNumber),
		OrderID:     &orderID,
		TableNumber: tableNumber,
		TargetRoles: []string{models.RoleWaiter},
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// TableCleaning builds the "table needs cleaning" event targeted at waiters.
func TableCleaning(tableID int64, tableNumber string) Event {
	return Event{
		Kind:        models.NotificationTableCleaning,
		Title:       "Masa Temizlik Gerekiyor!",
		Message:     fmt.Sprintf("Masa %s ödeme alındı ve temizlik bekliyor", tableNumber),
		TableID:     &tableID,
		TableNumber: tableNumber,
		TargetRoles: []string{models.RoleWaiter},
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

// Publish implements Notifier.
func (Noop) Publish(context.Context, Event) error { return nil }
