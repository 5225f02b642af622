package models

// Order lifecycle statuses. The values are the Turkish identifiers used on
// the wire and in the database; they are part of the API contract.
const (
	OrderStatusPending   = "bekliyor"
	OrderStatusPreparing = "hazirlaniyor"
	OrderStatusReady     = "hazir"
	OrderStatusCompleted = "tamamlandi"
	OrderStatusCancelled = "iptal"
)

// Table statuses.
const (
	TableStatusAvailable = "musait"
	TableStatusOccupied  = "dolu"
	TableStatusReserved  = "rezerve"
	TableStatusCleaning  = "temizlik"
)

// Canonical staff roles. Tokens and policy checks always use these; incoming
// role strings are mapped through NormalizeRole first.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
)

// Payment methods.
const (
	PaymentMethodCash    = "nakit"
	PaymentMethodCard    = "kart"
	PaymentMethodDigital = "dijital"
)

// Activity types recorded in the audit trail.
const (
	ActivityOrderCreated       = "order_created"
	ActivityOrderUpdated       = "order_updated"
	ActivityOrderCompleted     = "order_completed"
	ActivityPaymentReceived    = "payment_received"
	ActivityTableCleaned       = "table_cleaned"
	ActivityTableStatusChanged = "table_status_changed"
	ActivityUserLogin          = "user_login"
	ActivityUserLogout         = "user_logout"
)

// Notification kinds published to staff.
const (
	NotificationOrderReady     = "order_ready"
	NotificationOrderCancelled = "order_cancelled"
	NotificationTableCleaning  = "table_cleaning"
	NotificationTableRequest   = "table_request"
)

// KitchenCategories are the menu categories prepared by the kitchen; orders
// containing at least one item from them appear on the kitchen display.
var KitchenCategories = map[string]bool{
	"tatlilar":        true,
	"classic_coffee":  true,
	"hot_chocolate":   true,
	"coffee_specials": true,
	"ice_latte":       true,
	"coffee_chiller":  true,
}

// NormalizeRole maps a stored or claimed role string, Turkish or English, to
// its canonical identifier. Unknown roles map to the empty string and are
// treated as having no privileges.
func NormalizeRole(role string) string {
	switch role {
	case RoleAdmin, "yonetici":
		return RoleAdmin
	case RoleManager, "mudur":
		return RoleManager
	case RoleCashier, "kasiyer":
		return RoleCashier
	case RoleWaiter, "garson":
		return RoleWaiter
	case RoleKitchen, "mutfak":
		return RoleKitchen
	default:
		return ""
	}
}

// RoleLabel returns the Turkish display name used in audit descriptions.
func RoleLabel(role string) string {
	switch NormalizeRole(role) {
	case RoleAdmin:
		return "Yönetici"
	case RoleManager:
		return "Müdür"
	case RoleCashier:
		return "Kasiyer"
	case RoleWaiter:
		return "Garson"
	case RoleKitchen:
		return "Mutfak"
	default:
		return "Kullanıcı"
	}
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminalOrderStatus reports whether s is a terminal order status. A
// terminal order is never mutated again.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// IsValidTableStatus reports whether s is a known table status.
func IsValidTableStatus(s string) bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusCleaning:
		return true
	}
	return false
}

// IsValidPaymentMethod reports whether s is a known payment method.
func IsValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodDigital:
		return true
	}
	return false
}
