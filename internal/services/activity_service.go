package services

import (
	"fmt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
)

// ActivityService owns the append-only audit trail. Every state-changing
// operation in the system writes exactly one entry through it. Descriptions
// are rendered here, at write time, so reports never reconstruct them from
// ids. Callers treat a failed write after a committed mutation as a degraded
// success: they log the failure and still report the operation as successful.
type ActivityService interface {
	LogActivity(entry *models.ActivityLog) error
	GetActivities(filters models.ActivityFilters) ([]models.ActivityLog, error)

	LogOrderCreated(actor models.Actor, orderID, tableID int64, tableNumber string, amount float64) error
	LogOrderStatusChanged(actor models.Actor, orderID, tableID int64, tableNumber, oldStatus, newStatus string) error
	LogOrderServiceCompleted(actor models.Actor, orderID, tableID int64, tableNumber, oldStatus string) error
	LogOrderCompleted(actor models.Actor, orderID, tableID int64, tableNumber, oldStatus string) error
	LogPaymentReceived(actor models.Actor, orderID, tableID int64, tableNumber string, amount float64, method string) error
	LogTableCleaned(actor models.Actor, tableID int64, tableNumber string) error
	LogTableStatusChanged(actor models.Actor, tableID int64, tableNumber, oldStatus, newStatus string) error
	LogUserLogin(user *models.User) error
	LogUserLogout(actor models.Actor) error
}

type activityService struct {
	activityRepo repositories.ActivityRepository
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(ar repositories.ActivityRepository) ActivityService {
	return &activityService{activityRepo: ar}
}

func (s *activityService) LogActivity(entry *models.ActivityLog) error {
	if entry.Type == "" || entry.Description == "" {
		return fmt.Errorf("%w: activity type and description are required", ErrValidation)
	}
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) GetActivities(filters models.ActivityFilters) ([]models.ActivityLog, error) {
	entries, err := s.activityRepo.GetActivities(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity log entries: %w", err)
	}
	return entries, nil
}

func (s *activityService) LogOrderCreated(actor models.Actor, orderID, tableID int64, tableNumber string, amount float64) error {
	entry := &models.ActivityLog{
		Type:        models.ActivityOrderCreated,
		Description: fmt.Sprintf("%s tarafından Masa %s için %.2f₺ tutarında sipariş oluşturuldu", actor.UserName, tableNumber, amount),
		Amount:      &amount,
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, &orderID)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) LogOrderStatusChanged(actor models.Actor, orderID, tableID int64, tableNumber, oldStatus, newStatus string) error {
	entry := &models.ActivityLog{
		Type: models.ActivityOrderUpdated,
		Description: fmt.Sprintf("%s tarafından sipariş durumu %s → %s olarak güncellendi",
			models.RoleLabel(actor.Role), oldStatus, newStatus),
		Details: models.JSONMap{"oldStatus": oldStatus, "newStatus": newStatus},
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, &orderID)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

// LogOrderServiceCompleted records a completion caused by a status transition
// (waiter finishing service); the description names the acting role.
func (s *activityService) LogOrderServiceCompleted(actor models.Actor, orderID, tableID int64, tableNumber, oldStatus string) error {
	entry := &models.ActivityLog{
		Type:        models.ActivityOrderCompleted,
		Description: fmt.Sprintf("%s tarafından sipariş servisi tamamlandı", models.RoleLabel(actor.Role)),
		Details:     models.JSONMap{"oldStatus": oldStatus, "newStatus": models.OrderStatusCompleted},
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, &orderID)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

// LogOrderCompleted records a completion caused by the payment flow; the
// description names the acting user.
func (s *activityService) LogOrderCompleted(actor models.Actor, orderID, tableID int64, tableNumber, oldStatus string) error {
	entry := &models.ActivityLog{
		Type:        models.ActivityOrderCompleted,
		Description: fmt.Sprintf("%s tarafından Masa %s siparişi tamamlandı", actor.UserName, tableNumber),
		Details:     models.JSONMap{"oldStatus": oldStatus, "newStatus": models.OrderStatusCompleted},
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, &orderID)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) LogPaymentReceived(actor models.Actor, orderID, tableID int64, tableNumber string, amount float64, method string) error {
	entry := &models.ActivityLog{
		Type: models.ActivityPaymentReceived,
		Description: fmt.Sprintf("%s tarafından Masa %s için %.2f₺ ödeme alındı (%s)",
			actor.UserName, tableNumber, amount, paymentMethodLabel(method)),
		Amount:  &amount,
		Details: models.JSONMap{"paymentMethod": method},
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, &orderID)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) LogTableCleaned(actor models.Actor, tableID int64, tableNumber string) error {
	entry := &models.ActivityLog{
		Type:        models.ActivityTableCleaned,
		Description: fmt.Sprintf("%s tarafından Masa %s temizlendi", actor.UserName, tableNumber),
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, nil)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) LogTableStatusChanged(actor models.Actor, tableID int64, tableNumber, oldStatus, newStatus string) error {
	entry := &models.ActivityLog{
		Type: models.ActivityTableStatusChanged,
		Description: fmt.Sprintf("%s tarafından Masa %s durumu %s → %s olarak değiştirildi",
			actor.UserName, tableNumber, oldStatus, newStatus),
		Details: models.JSONMap{"oldStatus": oldStatus, "newStatus": newStatus},
	}
	fillActorAndRefs(entry, actor, &tableID, &tableNumber, nil)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) LogUserLogin(user *models.User) error {
	entry := &models.ActivityLog{
		Type:        models.ActivityUserLogin,
		Description: fmt.Sprintf("%s giriş yaptı", user.Name),
		UserID:      &user.ID,
		UserName:    &user.Name,
	}
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func (s *activityService) LogUserLogout(actor models.Actor) error {
	entry := &models.ActivityLog{
		Type:        models.ActivityUserLogout,
		Description: fmt.Sprintf("%s çıkış yaptı", actor.UserName),
	}
	fillActorAndRefs(entry, actor, nil, nil, nil)
	_, err := s.activityRepo.CreateActivity(entry)
	return err
}

func fillActorAndRefs(entry *models.ActivityLog, actor models.Actor, tableID *int64, tableNumber *string, orderID *int64) {
	if actor.UserID != 0 {
		id := actor.UserID
		entry.UserID = &id
	}
	if actor.UserName != "" {
		name := actor.UserName
		entry.UserName = &name
	}
	entry.TableID = tableID
	entry.TableNumber = tableNumber
	entry.OrderID = orderID
}

func paymentMethodLabel(method string) string {
	switch method {
	case models.PaymentMethodCash:
		return "Nakit"
	case models.PaymentMethodCard:
		return "Kart"
	case models.PaymentMethodDigital:
		return "Dijital"
	default:
		return method
	}
}
