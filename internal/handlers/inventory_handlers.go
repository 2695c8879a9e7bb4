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

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func respondInventoryError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrInventoryRecordNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory record not found.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inventory payload.", err.Error()))
	default:
		utils.LogError(err, action+": error from inventoryService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Inventory operation failed.", "Internal error"))
	}
}

// GetInventory lists every tracked stock record.
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	records, err := h.inventoryService.GetAll()
	if err != nil {
		respondInventoryError(c, err, "GetInventory")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetLowStock lists records at or below their minimum level.
func (h *InventoryHandler) GetLowStock(c *gin.Context) {
	records, err := h.inventoryService.LowStockItems()
	if err != nil {
		respondInventoryError(c, err, "GetLowStock")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetInventoryByItemID fetches the stock record of one menu item.
func (h *InventoryHandler) GetInventoryByItemID(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item id.", err.Error()))
		return
	}
	record, err := h.inventoryService.GetByItemID(itemID)
	if err != nil {
		respondInventoryError(c, err, "GetInventoryByItemID")
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateInventoryRecord starts tracking stock for a menu item.
func (h *InventoryHandler) CreateInventoryRecord(c *gin.Context) {
	var record models.InventoryRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	if err := h.inventoryService.CreateRecord(&record); err != nil {
		respondInventoryError(c, err, "CreateInventoryRecord")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// AdjustStockRequest carries a stock correction or a restock delivery.
type AdjustStockRequest struct {
	NewStock *int `json:"new_stock"`
	Restock  *int `json:"restock"`
}

// AdjustStock sets an absolute stock count or applies a restock delivery,
// depending on which field the payload carries.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item id.", err.Error()))
		return
	}
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	if req.NewStock == nil && req.Restock == nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Either new_stock or restock is required.", ""))
		return
	}

	var record *models.InventoryRecord
	if req.NewStock != nil {
		record, err = h.inventoryService.SetStock(itemID, *req.NewStock)
	} else {
		record, err = h.inventoryService.Restock(itemID, *req.Restock)
	}
	if err != nil {
		respondInventoryError(c, err, "AdjustStock")
		return
	}
	c.JSON(http.StatusOK, record)
}
