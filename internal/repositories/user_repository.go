package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"

	"github.com/lib/pq"
)

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	CreateUser(user *models.User) (int64, error)
	FindUserByID(userID int64) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(userID int64) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, username, password_hash, role, is_active, created_at, updated_at`

func (r *userRepository) CreateUser(user *models.User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	query := `INSERT INTO users (name, username, password_hash, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	err := r.db.QueryRow(query,
		user.Name, user.Username, user.PasswordHash, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%w (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *userRepository) FindUserByID(userID int64) (*models.User, error) {
	return r.findUser(`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

func (r *userRepository) FindUserByUsername(username string) (*models.User, error) {
	return r.findUser(`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *userRepository) findUser(query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Name, &user.Username, &user.PasswordHash,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *userRepository) GetUsers() ([]models.User, error) {
	users := []models.User{}
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

func (r *userRepository) UpdateUser(user *models.User) error {
	user.UpdatedAt = time.Now()
	query := `UPDATE users SET name = $1, username = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6
	          WHERE id = $7`
	result, err := r.db.Exec(query,
		user.Name, user.Username, user.PasswordHash, user.Role, user.IsActive, user.UpdatedAt, user.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w (constraint: %s)", ErrDuplicateKey, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	return checkRowsAffected(result, user.ID, "user update")
}

func (r *userRepository) DeleteUser(userID int64) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, userID, err)
	}
	return checkRowsAffected(result, userID, "user delete")
}
