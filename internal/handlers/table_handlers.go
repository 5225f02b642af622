package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_pos_backend/internal/middleware"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TableHandler holds the table service.
type TableHandler struct {
	tableService services.TableService
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(ts services.TableService) *TableHandler {
	return &TableHandler{tableService: ts}
}

func (h *TableHandler) CreateTable(c *gin.Context) {
	var req services.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.CreateTable(req)
	if err != nil {
		if errors.Is(err, services.ErrTableNumberExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A table with this number already exists.", err.Error()))
			return
		}
		utils.LogError(err, "CreateTable: Error from tableService.CreateTable")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create table.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, table)
}

func (h *TableHandler) GetTables(c *gin.Context) {
	tables, err := h.tableService.GetTables()
	if err != nil {
		utils.LogError(err, "GetTables: Error from tableService.GetTables")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tables.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) GetTableByID(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	table, err := h.tableService.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetTableByID: Error from tableService.GetTableByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch table.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) UpdateTable(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	var req services.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	table, err := h.tableService.UpdateTable(tableID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		case errors.Is(err, services.ErrTableNumberExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A table with this number already exists.", err.Error()))
		default:
			utils.LogError(err, "UpdateTable: Error from tableService.UpdateTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTableStatus handles manual table status changes (cleaning done,
// reservation, closing a table).
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	var req services.UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	actor := middleware.ActorFromContext(c)
	table, err := h.tableService.UpdateTableStatus(tableID, req.Status, actor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table status.", err.Error()))
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		case errors.Is(err, services.ErrTableHasOrder):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table has an active order.", err.Error()))
		default:
			utils.LogError(err, "UpdateTableStatus: Error from tableService.UpdateTableStatus")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// GetCashierTables handles the cashier panel view of occupied tables.
func (h *TableHandler) GetCashierTables(c *gin.Context) {
	tables, err := h.tableService.GetCashierTables()
	if err != nil {
		utils.LogError(err, "GetCashierTables: Error from tableService.GetCashierTables")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch occupied tables.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) DeleteTable(c *gin.Context) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table ID format.", err.Error()))
		return
	}

	if err := h.tableService.DeleteTable(tableID); err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		case errors.Is(err, services.ErrTableHasOrder):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table has an active order.", err.Error()))
		default:
			utils.LogError(err, "DeleteTable: Error from tableService.DeleteTable")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}
