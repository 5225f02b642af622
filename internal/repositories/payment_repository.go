package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// PaymentRepository defines the interface for payment records.
type PaymentRepository interface {
	CreatePayment(payment *models.Payment) (int64, error)
	GetPayments(limit int) ([]models.Payment, error)
	GetPaymentsByDateRange(start, end time.Time) ([]models.Payment, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(payment *models.Payment) (int64, error) {
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	query := `INSERT INTO payments (order_id, table_id, amount, method, status, processed_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	err := r.db.QueryRow(query,
		payment.OrderID, payment.TableID, payment.Amount, payment.Method,
		payment.Status, payment.ProcessedBy, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *paymentRepository) GetPayments(limit int) ([]models.Payment, error) {
	if limit <= 0 || limit > maxActivityRows {
		limit = maxActivityRows
	}
	query := `SELECT id, order_id, table_id, amount, method, status, processed_by, created_at
	          FROM payments
	          ORDER BY created_at DESC
	          LIMIT $1`
	return r.queryPayments(query, limit)
}

func (r *paymentRepository) GetPaymentsByDateRange(start, end time.Time) ([]models.Payment, error) {
	query := `SELECT id, order_id, table_id, amount, method, status, processed_by, created_at
	          FROM payments
	          WHERE created_at BETWEEN $1 AND $2
	          ORDER BY created_at DESC`
	return r.queryPayments(query, start, end)
}

func (r *paymentRepository) queryPayments(query string, args ...interface{}) ([]models.Payment, error) {
	payments := []models.Payment{}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.OrderID, &p.TableID, &p.Amount, &p.Method, &p.Status, &p.ProcessedBy, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}
