package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_pos_backend/internal/models"
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

func parseTableID(c *gin.Context) (int64, bool) {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table id.", err.Error()))
		return 0, false
	}
	return tableID, true
}

// GetTables lists the floor.
func (h *TableHandler) GetTables(c *gin.Context) {
	tables, err := h.tableService.GetTables()
	if err != nil {
		utils.LogError(err, "GetTables: error from tableService.GetTables")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tables.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, tables)
}

// GetTableByID fetches one table.
func (h *TableHandler) GetTableByID(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}
	table, err := h.tableService.GetTableByID(tableID)
	if err != nil {
		if errors.Is(err, services.ErrTableNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetTableByID: error from tableService.GetTableByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch table.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, table)
}

// UpdateTableStatusRequest drives both order assignment and manual staff transitions.
type UpdateTableStatusRequest struct {
	Status       string   `json:"status" binding:"required"`
	OrderID      *string  `json:"order_id"`
	RunningTotal *float64 `json:"running_total"`
	Waiter       *string  `json:"waiter"`
}

// UpdateTableStatus assigns an in-progress order (status=occupied with an
// order_id) or applies a manual transition (reserved, cleaning, available).
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	tableID, ok := parseTableID(c)
	if !ok {
		return
	}
	var req UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	var err error
	var table *models.Table
	if req.Status == string(models.TableStatusOccupied) {
		if req.OrderID == nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "order_id is required to occupy a table.", ""))
			return
		}
		runningTotal := 0.0
		if req.RunningTotal != nil {
			runningTotal = *req.RunningTotal
		}
		table, err = h.tableService.AssignOrder(tableID, *req.OrderID, runningTotal, req.Waiter)
	} else {
		table, err = h.tableService.SetStatus(tableID, req.Status)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTableNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Table not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidTableStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table status.", err.Error()))
		default:
			utils.LogError(err, "UpdateTableStatus: error from tableService")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update table.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, table)
}

// ResizeTablesRequest sets the configured table count.
type ResizeTablesRequest struct {
	Count int `json:"count" binding:"required"`
}

// ResizeTables grows or shrinks the floor. Shrinking past an occupied table is refused.
func (h *TableHandler) ResizeTables(c *gin.Context) {
	var req ResizeTablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	tables, err := h.tableService.Resize(req.Count)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table count cannot be applied.", err.Error()))
			return
		}
		utils.LogError(err, "ResizeTables: error from tableService.Resize")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to resize tables.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, tables)
}
