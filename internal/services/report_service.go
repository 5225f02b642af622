package services

import (
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
)

// ReportService derives daily metrics from the audit trail. The activity log
// is the single source for the numbers: sales are the sum of payment
// entries, order counts come from creation entries and the status breakdown
// is read out of each entry's detail payload. Nothing is recomputed from the
// orders table.
type ReportService interface {
	GetDailySummary(day time.Time) (*models.ReportSummary, error)
	GetSummary(start, end time.Time) (*models.ReportSummary, error)
}

type reportService struct {
	activitySvc ActivityService
}

// NewReportService creates a new instance of ReportService.
func NewReportService(as ActivityService) ReportService {
	return &reportService{activitySvc: as}
}

func (s *reportService) GetDailySummary(day time.Time) (*models.ReportSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return s.GetSummary(start, end)
}

func (s *reportService) GetSummary(start, end time.Time) (*models.ReportSummary, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: report range end must be after start", ErrValidation)
	}

	entries, err := s.activitySvc.GetActivities(models.ActivityFilters{Start: &start, End: &end})
	if err != nil {
		return nil, fmt.Errorf("failed to load activity entries for report: %w", err)
	}

	summary := &models.ReportSummary{
		Start:         start,
		End:           end,
		StatusChanges: map[string]int{},
		Activities:    entries,
	}

	for _, entry := range entries {
		switch entry.Type {
		case models.ActivityOrderCreated:
			summary.TotalOrders++
		case models.ActivityPaymentReceived:
			if entry.Amount != nil {
				summary.TotalSales += *entry.Amount
			}
		}
		switch entry.Type {
		case models.ActivityOrderUpdated, models.ActivityOrderCompleted:
			if newStatus, ok := entry.Details["newStatus"].(string); ok {
				summary.StatusChanges[newStatus]++
			}
		}
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalSales / float64(summary.TotalOrders)
	}
	return summary, nil
}
