package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetDailySummary handles the end-of-day report. The optional date query
// parameter (YYYY-MM-DD) defaults to today.
func (h *ReportHandler) GetDailySummary(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date format, expected YYYY-MM-DD.", err.Error()))
			return
		}
		day = parsed
	}

	summary, err := h.reportService.GetDailySummary(day)
	if err != nil {
		utils.LogError(err, "GetDailySummary: Error from reportService.GetDailySummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build daily summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSummary handles reports over an arbitrary range (RFC 3339 start/end).
func (h *ReportHandler) GetSummary(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid start timestamp.", err.Error()))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end timestamp.", err.Error()))
		return
	}

	summary, err := h.reportService.GetSummary(start, end)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report range.", err.Error()))
			return
		}
		utils.LogError(err, "GetSummary: Error from reportService.GetSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
