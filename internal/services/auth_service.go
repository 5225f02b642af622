package services

import (
	"errors"
	"fmt"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// Custom errors for the authentication flow.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username is already taken")
)

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// CreateUserRequest is used by admins to register staff accounts.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest edits a staff account. Password is optional; empty
// leaves the stored hash untouched.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

type AuthService interface {
	Login(creds models.Credentials) (*LoginResponse, error)
	Logout(actor models.Actor) error
	CreateUser(req CreateUserRequest) (*models.User, error)
	GetUsers() ([]models.User, error)
	GetUserByID(userID int64) (*models.User, error)
	UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID int64) error
}

type authService struct {
	userRepo    repositories.UserRepository
	activitySvc ActivityService
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ur repositories.UserRepository, as ActivityService) AuthService {
	return &authService{userRepo: ur, activitySvc: as}
}

// Login verifies the credentials and issues a signed token carrying the
// user's identity and canonical role. Lookup and password failures collapse
// into one error so the response does not reveal which part was wrong.
func (s *authService) Login(creds models.Credentials) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username, user.Name, models.NormalizeRole(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.activitySvc.LogUserLogin(user); err != nil {
		utils.LogError(err, fmt.Sprintf("Login: audit write failed for user %d", user.ID))
	}

	return &LoginResponse{Token: token, User: user}, nil
}

// Logout only records the event; tokens are stateless and expire on their own.
func (s *authService) Logout(actor models.Actor) error {
	if err := s.activitySvc.LogUserLogout(actor); err != nil {
		utils.LogError(err, fmt.Sprintf("Logout: audit write failed for user %d", actor.UserID))
	}
	return nil
}

func (s *authService) CreateUser(req CreateUserRequest) (*models.User, error) {
	role := models.NormalizeRole(req.Role)
	if role == "" {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if _, err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *authService) GetUserByID(userID int64) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error) {
	role := models.NormalizeRole(req.Role)
	if role == "" {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.Name = req.Name
	user.Username = req.Username
	user.Role = role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, req.Username)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *authService) DeleteUser(userID int64) error {
	if err := s.userRepo.DeleteUser(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
