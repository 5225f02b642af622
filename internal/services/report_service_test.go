package services

import (
	"testing"
	"time"

	"restaurant_pos_backend/internal/models"
)

func TestGetSummaryDerivesFromAuditTrail(t *testing.T) {
	activityRepo := newFakeActivityRepo()
	activitySvc := NewActivityService(activityRepo)
	reportSvc := NewReportService(activitySvc)

	actor := models.Actor{UserID: 1, UserName: "Patron", Role: models.RoleAdmin}
	if err := activitySvc.LogOrderCreated(actor, 1, 1, "1", 240); err != nil {
		t.Fatal(err)
	}
	if err := activitySvc.LogOrderCreated(actor, 2, 2, "2", 160); err != nil {
		t.Fatal(err)
	}
	if err := activitySvc.LogOrderStatusChanged(actor, 1, 1, "1", models.OrderStatusPending, models.OrderStatusPreparing); err != nil {
		t.Fatal(err)
	}
	if err := activitySvc.LogPaymentReceived(actor, 1, 1, "1", 240, models.PaymentMethodCash); err != nil {
		t.Fatal(err)
	}
	if err := activitySvc.LogOrderCompleted(actor, 1, 1, "1", models.OrderStatusReady); err != nil {
		t.Fatal(err)
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	summary, err := reportSvc.GetSummary(start, end)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if summary.TotalOrders != 2 {
		t.Errorf("TotalOrders = %d, want 2", summary.TotalOrders)
	}
	if summary.TotalSales != 240 {
		t.Errorf("TotalSales = %v, want 240", summary.TotalSales)
	}
	if summary.AverageOrderValue != 120 {
		t.Errorf("AverageOrderValue = %v, want 120", summary.AverageOrderValue)
	}
	if summary.StatusChanges[models.OrderStatusPreparing] != 1 {
		t.Errorf("StatusChanges[hazirlaniyor] = %d, want 1", summary.StatusChanges[models.OrderStatusPreparing])
	}
	if summary.StatusChanges[models.OrderStatusCompleted] != 1 {
		t.Errorf("StatusChanges[tamamlandi] = %d, want 1", summary.StatusChanges[models.OrderStatusCompleted])
	}
	if len(summary.Activities) != 5 {
		t.Errorf("Activities = %d entries, want 5", len(summary.Activities))
	}
}

// A busy day produces far more audit entries than a single limited activity
// page holds; the aggregates must still cover every entry in the window.
func TestGetSummaryCoversFullWindow(t *testing.T) {
	activityRepo := newFakeActivityRepo()
	activitySvc := NewActivityService(activityRepo)
	reportSvc := NewReportService(activitySvc)

	actor := models.Actor{UserID: 1, UserName: "Patron", Role: models.RoleAdmin}
	const orders = 1200
	for i := int64(1); i <= orders; i++ {
		if err := activitySvc.LogOrderCreated(actor, i, 1, "1", 10); err != nil {
			t.Fatal(err)
		}
		if err := activitySvc.LogPaymentReceived(actor, i, 1, "1", 10, models.PaymentMethodCash); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := reportSvc.GetSummary(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.TotalOrders != orders {
		t.Errorf("TotalOrders = %d, want %d", summary.TotalOrders, orders)
	}
	if summary.TotalSales != float64(orders)*10 {
		t.Errorf("TotalSales = %v, want %v", summary.TotalSales, float64(orders)*10)
	}
	if len(summary.Activities) != orders*2 {
		t.Errorf("Activities = %d entries, want %d", len(summary.Activities), orders*2)
	}
}

func TestGetSummaryRejectsEmptyRange(t *testing.T) {
	reportSvc := NewReportService(NewActivityService(newFakeActivityRepo()))
	now := time.Now()
	if _, err := reportSvc.GetSummary(now, now); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestGetSummaryEmptyTrail(t *testing.T) {
	reportSvc := NewReportService(NewActivityService(newFakeActivityRepo()))
	summary, err := reportSvc.GetSummary(time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if summary.TotalOrders != 0 || summary.TotalSales != 0 || summary.AverageOrderValue != 0 {
		t.Errorf("empty trail produced non-zero summary: %+v", summary)
	}
}
