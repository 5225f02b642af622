package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ActivityHandler holds the activity service.
type ActivityHandler struct {
	activityService services.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(as services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: as}
}

// CreateActivityRequest is the direct append payload. The acting user comes
// from the token, never from the body.
type CreateActivityRequest struct {
	Type        string         `json:"type" binding:"required"`
	Description string         `json:"description" binding:"required"`
	TableID     *int64         `json:"table_id"`
	TableNumber *string        `json:"table_number"`
	OrderID     *int64         `json:"order_id"`
	Amount      *float64       `json:"amount"`
	Details     models.JSONMap `json:"details"`
}

// CreateActivity handles direct appends to the audit trail.
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	entry := &models.ActivityLog{
		Type:        req.Type,
		Description: req.Description,
		TableID:     req.TableID,
		TableNumber: req.TableNumber,
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Details:     req.Details,
	}
	if actor.UserID != 0 {
		entry.UserID = &actor.UserID
	}
	if actor.UserName != "" {
		entry.UserName = &actor.UserName
	}

	if err := h.activityService.LogActivity(entry); err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid activity payload.", err.Error()))
			return
		}
		utils.LogError(err, "CreateActivity: Error from activityService.LogActivity")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record activity.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetActivities handles querying the audit trail with filters.
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	var filters models.ActivityFilters

	if activityType := c.Query("type"); activityType != "" {
		filters.Type = &activityType
	}
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid user_id format.", err.Error()))
			return
		}
		filters.UserID = &userID
	}
	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table_id format.", err.Error()))
			return
		}
		filters.TableID = &tableID
	}
	if startStr := c.Query("start"); startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid start timestamp.", err.Error()))
			return
		}
		filters.Start = &start
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end timestamp.", err.Error()))
			return
		}
		filters.End = &end
	}
	filters.Today = c.Query("today") == "true"
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid limit format.", "limit must be a positive integer"))
			return
		}
		filters.Limit = limit
	}

	entries, err := h.activityService.GetActivities(filters)
	if err != nil {
		utils.LogError(err, "GetActivities: Error from activityService.GetActivities")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch activities.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, entries)
}
