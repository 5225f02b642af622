package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/notifier"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/pkg/utils"
)

var ErrOrderNotPayable = errors.New("order is not ready for payment")

// CompletePaymentRequest is used by the cashier panel to collect a check.
type CompletePaymentRequest struct {
	OrderID int64  `json:"order_id" binding:"required"`
	Method  string `json:"method" binding:"required"`
}

// PaymentService owns the checkout flow: recording the payment, completing
// the order and cycling the table into cleaning.
type PaymentService interface {
	CompletePayment(req CompletePaymentRequest, actor models.Actor) (*models.Payment, error)
	GetPayments(limit int) ([]models.Payment, error)
	GetPaymentsByDateRange(start, end time.Time) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	tableRepo   repositories.TableRepository
	activitySvc ActivityService
	notifier    notifier.Notifier
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	pr repositories.PaymentRepository,
	or repositories.OrderRepository,
	tr repositories.TableRepository,
	as ActivityService,
	n notifier.Notifier,
) PaymentService {
	return &paymentService{
		paymentRepo: pr,
		orderRepo:   or,
		tableRepo:   tr,
		activitySvc: as,
		notifier:    n,
	}
}

// CompletePayment records the payment for a ready order, marks the order
// completed and moves its table to cleaning. Paying an already completed
// order is a no-op success so a double-submitted checkout cannot charge
// twice. Audit entries are written after the mutations commit; their
// failures degrade to log lines, never to an error response.
func (s *paymentService) CompletePayment(req CompletePaymentRequest, actor models.Actor) (*models.Payment, error) {
	if !models.IsValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}

	order, err := s.orderRepo.GetOrderByID(req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order for payment: %w", err)
	}

	if order.Status == models.OrderStatusCompleted {
		return nil, nil
	}
	if order.Status != models.OrderStatusReady {
		return nil, fmt.Errorf("%w: order %d is %s", ErrOrderNotPayable, order.ID, order.Status)
	}

	now := time.Now()
	payment := &models.Payment{
		OrderID:     order.ID,
		TableID:     order.TableID,
		Amount:      order.Total,
		Method:      req.Method,
		Status:      models.PaymentStatusCompleted,
		ProcessedBy: actor.UserID,
		CreatedAt:   now,
	}
	if _, err := s.paymentRepo.CreatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to record payment for order %d: %w", order.ID, err)
	}

	oldStatus := order.Status
	err = s.orderRepo.UpdateOrderStatus(order.ID, models.OrderStatusCompleted, oldStatus, now, &now)
	if err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			// Someone completed the order between our read and our write. The
			// payment row stands; re-read and continue only if the race was a
			// completion, otherwise surface the conflict.
			current, refetchErr := s.orderRepo.GetOrderByID(order.ID)
			if refetchErr != nil || current.Status != models.OrderStatusCompleted {
				return nil, fmt.Errorf("%w: order %d changed during payment", ErrOrderNotPayable, order.ID)
			}
		} else {
			return nil, fmt.Errorf("failed to complete order %d after payment: %w", order.ID, err)
		}
	}

	if err := s.tableRepo.SetCurrentOrder(order.TableID, nil, models.TableStatusCleaning, now); err != nil {
		return nil, fmt.Errorf("failed to release table %d after payment: %w", order.TableID, err)
	}

	_ = s.notifier.Publish(context.Background(), notifier.TableCleaning(order.TableID, order.TableNumber))

	if err := s.activitySvc.LogPaymentReceived(actor, order.ID, order.TableID, order.TableNumber, order.Total, req.Method); err != nil {
		utils.LogError(err, fmt.Sprintf("CompletePayment: payment audit write failed for order %d", order.ID))
	}
	if err := s.activitySvc.LogOrderCompleted(actor, order.ID, order.TableID, order.TableNumber, oldStatus); err != nil {
		utils.LogError(err, fmt.Sprintf("CompletePayment: completion audit write failed for order %d", order.ID))
	}
	if err := s.activitySvc.LogTableStatusChanged(actor, order.TableID, order.TableNumber, models.TableStatusOccupied, models.TableStatusCleaning); err != nil {
		utils.LogError(err, fmt.Sprintf("CompletePayment: table audit write failed for table %d", order.TableID))
	}

	return payment, nil
}

func (s *paymentService) GetPayments(limit int) ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPayments(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) GetPaymentsByDateRange(start, end time.Time) ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPaymentsByDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments by date range: %w", err)
	}
	return payments, nil
}
