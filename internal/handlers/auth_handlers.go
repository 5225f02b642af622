package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.Login(creds)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
		case errors.Is(err, services.ErrUserInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "User account is disabled.", ""))
		default:
			utils.LogError(err, "Login: Error from authService.Login")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Login failed.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout records the logout event for the authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if err := h.authService.Logout(actor); err != nil {
		utils.LogError(err, "Logout: Error from authService.Logout")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// CreateUser handles staff account registration.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, err := h.authService.CreateUser(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid user payload.", err.Error()))
		case errors.Is(err, services.ErrUsernameExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username is already taken.", err.Error()))
		default:
			utils.LogError(err, "CreateUser: Error from authService.CreateUser")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create user.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUsers handles listing staff accounts.
func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.GetUsers()
	if err != nil {
		utils.LogError(err, "GetUsers: Error from authService.GetUsers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch users.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID handles fetching a single staff account.
func (h *AuthHandler) GetUserByID(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid user ID format.", err.Error()))
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetUserByID: Error from authService.GetUserByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch user.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles editing a staff account.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid user ID format.", err.Error()))
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, err := h.authService.UpdateUser(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid user payload.", err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
		case errors.Is(err, services.ErrUsernameExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username is already taken.", err.Error()))
		default:
			utils.LogError(err, "UpdateUser: Error from authService.UpdateUser")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update user.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles removing a staff account.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid user ID format.", err.Error()))
		return
	}

	if err := h.authService.DeleteUser(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteUser: Error from authService.DeleteUser")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete user.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
