package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler holds the payment service.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// CompletePayment handles the cashier checkout flow: record the payment,
// complete the order and send the table to cleaning.
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	var req services.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	payment, err := h.paymentService.CompletePayment(req, actor)
	if err != nil {
		utils.LogError(err, "CompletePayment: Error from paymentService.CompletePayment")
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid payment payload.", err.Error()))
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		case errors.Is(err, services.ErrOrderNotPayable):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Order is not ready for payment.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to complete payment.", "Internal error"))
		}
		return
	}
	if payment == nil {
		// Order was already paid and completed; a repeated submit is not an error.
		c.JSON(http.StatusOK, gin.H{"message": "Order already completed"})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments handles listing recent payments, optionally bounded by a
// start/end range (RFC 3339 timestamps).
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" || endStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid start timestamp.", err.Error()))
			return
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end timestamp.", err.Error()))
			return
		}
		payments, err := h.paymentService.GetPaymentsByDateRange(start, end)
		if err != nil {
			utils.LogError(err, "GetPayments: Error from paymentService.GetPaymentsByDateRange")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
			return
		}
		c.JSON(http.StatusOK, payments)
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid limit format.", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	payments, err := h.paymentService.GetPayments(limit)
	if err != nil {
		utils.LogError(err, "GetPayments: Error from paymentService.GetPayments")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch payments.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, payments)
}
