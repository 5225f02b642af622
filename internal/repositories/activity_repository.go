package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"restaurant_pos_backend/internal/models"
)

// Upper bound on rows a single limited activity query may return.
const maxActivityRows = 1000

// ActivityRepository defines the interface for the append-only audit trail.
// There are deliberately no update or delete methods.
type ActivityRepository interface {
	CreateActivity(entry *models.ActivityLog) (int64, error)
	// GetActivities caps the result at maxActivityRows only when a positive
	// Limit is supplied; a zero Limit reads the full window. Report
	// aggregates depend on the unbounded read.
	GetActivities(filters models.ActivityFilters) ([]models.ActivityLog, error)
}

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) CreateActivity(entry *models.ActivityLog) (int64, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	query := `INSERT INTO activity_logs
	            (type, description, user_id, user_name, table_id, table_number, order_id, amount, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`
	err := r.db.QueryRow(query,
		entry.Type, entry.Description, entry.UserID, entry.UserName,
		entry.TableID, entry.TableNumber, entry.OrderID, entry.Amount,
		entry.Details, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating activity log entry: %v", ErrDatabaseError, err)
	}
	return entry.ID, nil
}

func (r *activityRepository) GetActivities(filters models.ActivityFilters) ([]models.ActivityLog, error) {
	entries := []models.ActivityLog{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT id, type, description, user_id, user_name, table_id, table_number, order_id, amount, details, created_at
        FROM activity_logs
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Type != nil && *filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCounter))
		args = append(args, *filters.Type)
		argCounter++
	}
	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCounter))
		args = append(args, *filters.UserID)
		argCounter++
	}
	if filters.TableID != nil {
		conditions = append(conditions, fmt.Sprintf("table_id = $%d", argCounter))
		args = append(args, *filters.TableID)
		argCounter++
	}
	if filters.Today {
		conditions = append(conditions, "created_at::date = CURRENT_DATE")
	} else {
		if filters.Start != nil {
			conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argCounter))
			args = append(args, *filters.Start)
			argCounter++
		}
		if filters.End != nil {
			conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argCounter))
			args = append(args, *filters.End)
			argCounter++
		}
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filters.Limit > 0 {
		limit := filters.Limit
		if limit > maxActivityRows {
			limit = maxActivityRows
		}
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCounter))
		args = append(args, limit)
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying activity logs: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.ActivityLog
		err := rows.Scan(
			&e.ID, &e.Type, &e.Description, &e.UserID, &e.UserName,
			&e.TableID, &e.TableNumber, &e.OrderID, &e.Amount,
			&e.Details, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning activity log entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating activity log rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}
