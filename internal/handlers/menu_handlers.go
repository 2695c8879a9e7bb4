package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

func parseItemID(c *gin.Context) (int64, bool) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item id.", err.Error()))
		return 0, false
	}
	return itemID, true
}

func respondMenuError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrMenuItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidMenuCategory):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid menu item payload.", err.Error()))
	default:
		utils.LogError(err, action+": error from menuService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Menu operation failed.", "Internal error"))
	}
}

// CreateMenuItem adds an item to the catalog.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	item, err := h.menuService.CreateItem(req)
	if err != nil {
		respondMenuError(c, err, "CreateMenuItem")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetMenuItems lists the catalog with optional category/availability filters.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}
	onlyAvailable := c.Query("available") == "true"
	items, err := h.menuService.GetItems(category, onlyAvailable)
	if err != nil {
		respondMenuError(c, err, "GetMenuItems")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItemByID fetches one catalog item.
func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}
	item, err := h.menuService.GetItemByID(itemID)
	if err != nil {
		respondMenuError(c, err, "GetMenuItemByID")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateMenuItem applies a partial edit (price, availability, flags).
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}
	var req services.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	item, err := h.menuService.UpdateItem(itemID, req)
	if err != nil {
		respondMenuError(c, err, "UpdateMenuItem")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes an item from the catalog.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}
	if err := h.menuService.DeleteItem(itemID); err != nil {
		respondMenuError(c, err, "DeleteMenuItem")
		return
	}
	c.Status(http.StatusNoContent)
}
