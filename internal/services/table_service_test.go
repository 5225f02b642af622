package services

import (
	"errors"
	"testing"

	"restaurant_pos_backend/internal/models"
)

func newTableServiceForTest() (TableService, *fakeTableRepo, *fakeActivityRepo) {
	tableRepo := newFakeTableRepo()
	activityRepo := newFakeActivityRepo()
	svc := NewTableService(tableRepo, NewActivityService(activityRepo))
	return svc, tableRepo, activityRepo
}

func TestCreateTable(t *testing.T) {
	svc, _, _ := newTableServiceForTest()

	table, err := svc.CreateTable(CreateTableRequest{Number: "12", Capacity: 4})
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if table.Status != models.TableStatusAvailable {
		t.Errorf("new table status = %q, want %q", table.Status, models.TableStatusAvailable)
	}

	if _, err := svc.CreateTable(CreateTableRequest{Number: "12", Capacity: 2}); !errors.Is(err, ErrTableNumberExists) {
		t.Errorf("duplicate number: got %v, want ErrTableNumberExists", err)
	}
}

func TestUpdateTableStatusAuditsCleaning(t *testing.T) {
	svc, tableRepo, activityRepo := newTableServiceForTest()
	table := tableRepo.addTable("8", models.TableStatusCleaning)
	actor := models.Actor{UserID: 7, UserName: "Ayşe", Role: models.RoleWaiter}

	updated, err := svc.UpdateTableStatus(table.ID, models.TableStatusAvailable, actor)
	if err != nil {
		t.Fatalf("UpdateTableStatus: %v", err)
	}
	if updated.Status != models.TableStatusAvailable {
		t.Errorf("status = %q, want %q", updated.Status, models.TableStatusAvailable)
	}
	if got := activityRepo.types(); len(got) != 1 || got[0] != models.ActivityTableCleaned {
		t.Errorf("audit entries = %v, want [table_cleaned]", got)
	}
}

func TestUpdateTableStatusAuditsGenericChange(t *testing.T) {
	svc, tableRepo, activityRepo := newTableServiceForTest()
	table := tableRepo.addTable("9", models.TableStatusAvailable)
	actor := models.Actor{UserID: 7, UserName: "Ayşe", Role: models.RoleWaiter}

	if _, err := svc.UpdateTableStatus(table.ID, models.TableStatusReserved, actor); err != nil {
		t.Fatalf("UpdateTableStatus: %v", err)
	}
	if got := activityRepo.types(); len(got) != 1 || got[0] != models.ActivityTableStatusChanged {
		t.Errorf("audit entries = %v, want [table_status_changed]", got)
	}
}

func TestUpdateTableStatusGuards(t *testing.T) {
	svc, tableRepo, _ := newTableServiceForTest()
	actor := models.Actor{UserID: 1, Role: models.RoleAdmin}

	table := tableRepo.addTable("3", models.TableStatusOccupied)
	orderID := int64(5)
	table.CurrentOrderID = &orderID

	if _, err := svc.UpdateTableStatus(table.ID, models.TableStatusAvailable, actor); !errors.Is(err, ErrTableHasOrder) {
		t.Errorf("freeing table with active order: got %v, want ErrTableHasOrder", err)
	}
	if _, err := svc.UpdateTableStatus(table.ID, "kapali", actor); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: got %v, want ErrValidation", err)
	}
	if _, err := svc.UpdateTableStatus(999, models.TableStatusAvailable, actor); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("unknown table: got %v, want ErrTableNotFound", err)
	}
}

func TestDeleteTableWithActiveOrder(t *testing.T) {
	svc, tableRepo, _ := newTableServiceForTest()
	table := tableRepo.addTable("4", models.TableStatusOccupied)
	orderID := int64(9)
	table.CurrentOrderID = &orderID

	if err := svc.DeleteTable(table.ID); !errors.Is(err, ErrTableHasOrder) {
		t.Errorf("got %v, want ErrTableHasOrder", err)
	}
}
