package services

import (
	"errors"
	"fmt"
	"time"

	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/pkg/utils"
)

var (
	ErrTableNumberExists = errors.New("a table with this number already exists")
	ErrTableHasOrder     = errors.New("table has an active order")
)

// CreateTableRequest is used for registering a new table.
type CreateTableRequest struct {
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateTableRequest is used for editing a table's layout attributes.
type UpdateTableRequest struct {
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

// UpdateTableStatusRequest is used for manual table status changes.
type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TableService interface {
	CreateTable(req CreateTableRequest) (*models.Table, error)
	GetTables() ([]models.Table, error)
	GetTableByID(tableID int64) (*models.Table, error)
	UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error)
	UpdateTableStatus(tableID int64, status string, actor models.Actor) (*models.Table, error)
	// GetCashierTables returns occupied tables with their active order attached.
	GetCashierTables() ([]models.Table, error)
	DeleteTable(tableID int64) error
}

type tableService struct {
	tableRepo   repositories.TableRepository
	activitySvc ActivityService
}

// NewTableService creates a new instance of TableService.
func NewTableService(tr repositories.TableRepository, as ActivityService) TableService {
	return &tableService{tableRepo: tr, activitySvc: as}
}

func (s *tableService) CreateTable(req CreateTableRequest) (*models.Table, error) {
	table := &models.Table{
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   models.TableStatusAvailable,
	}
	if _, err := s.tableRepo.CreateTable(table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrTableNumberExists, req.Number)
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

func (s *tableService) GetTables() ([]models.Table, error) {
	tables, err := s.tableRepo.GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) GetTableByID(tableID int64) (*models.Table, error) {
	table, err := s.tableRepo.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to get table by ID: %w", err)
	}
	return table, nil
}

func (s *tableService) UpdateTable(tableID int64, req UpdateTableRequest) (*models.Table, error) {
	table, err := s.GetTableByID(tableID)
	if err != nil {
		return nil, err
	}
	table.Number = req.Number
	table.Capacity = req.Capacity
	if err := s.tableRepo.UpdateTable(table); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrTableNumberExists, req.Number)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return table, nil
}

// UpdateTableStatus applies a manual status change. A table holding an
// active order cannot be moved out of occupied by hand; the payment flow
// owns that transition. Moving a table from cleaning to available is the
// "table cleaned" action and is audited as such.
func (s *tableService) UpdateTableStatus(tableID int64, status string, actor models.Actor) (*models.Table, error) {
	if !models.IsValidTableStatus(status) {
		return nil, fmt.Errorf("%w: unknown table status %q", ErrValidation, status)
	}

	table, err := s.GetTableByID(tableID)
	if err != nil {
		return nil, err
	}
	if table.CurrentOrderID != nil && status != models.TableStatusOccupied {
		return nil, fmt.Errorf("%w: table %s (order %d)", ErrTableHasOrder, table.Number, *table.CurrentOrderID)
	}
	if table.Status == status {
		return table, nil
	}

	now := time.Now()
	if err := s.tableRepo.UpdateTableStatus(tableID, status, now); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to update table status: %w", err)
	}

	oldStatus := table.Status
	table.Status = status
	table.UpdatedAt = now

	var auditErr error
	if oldStatus == models.TableStatusCleaning && status == models.TableStatusAvailable {
		auditErr = s.activitySvc.LogTableCleaned(actor, table.ID, table.Number)
	} else {
		auditErr = s.activitySvc.LogTableStatusChanged(actor, table.ID, table.Number, oldStatus, status)
	}
	if auditErr != nil {
		utils.LogError(auditErr, fmt.Sprintf("UpdateTableStatus: audit write failed for table %d", table.ID))
	}

	return table, nil
}

func (s *tableService) GetCashierTables() ([]models.Table, error) {
	tables, err := s.tableRepo.GetOccupiedTablesWithOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get occupied tables: %w", err)
	}
	return tables, nil
}

func (s *tableService) DeleteTable(tableID int64) error {
	table, err := s.GetTableByID(tableID)
	if err != nil {
		return err
	}
	if table.CurrentOrderID != nil {
		return fmt.Errorf("%w: table %s", ErrTableHasOrder, table.Number)
	}
	if err := s.tableRepo.DeleteTable(tableID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}
