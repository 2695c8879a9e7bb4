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

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// Checkout finalizes a cart into an order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req services.FinalizeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}

	order, err := h.orderService.FinalizeOrder(req)
	if err != nil {
		utils.LogError(err, "Checkout: error from orderService.FinalizeOrder")
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more menu items not found or unavailable.", err.Error()))
		case errors.Is(err, services.ErrInsufficientPayment):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeInsufficientPayment, "Cash tendered is below the order total.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid checkout request.", err.Error()))
		case errors.Is(err, services.ErrOrderPersistence):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodePersistenceFailed, "Order could not be saved. Please retry.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to finalize order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrders handles fetching orders with filters.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters

	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		tableID, err := strconv.ParseInt(tableIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid table_id format.", err.Error()))
			return
		}
		filters.TableID = &tableID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if method := c.Query("payment_method"); method != "" {
		filters.PaymentMethod = &method
	}
	if date := c.Query("date"); date != "" {
		filters.Date = &date
	}
	filters.Page = 1
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be a positive integer"))
			return
		}
		filters.Page = page
	}
	filters.PageSize = 20
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize <= 0 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be a positive integer"))
			return
		}
		filters.PageSize = pageSize
	}

	orders, totalCount, err := h.orderService.GetOrders(filters)
	if err != nil {
		utils.LogError(err, "GetOrders: error from orderService.GetOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch orders.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetOrderByID handles fetching a single order with its line snapshots.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetOrderByID: error from orderService.GetOrderByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder moves an order to cancelled and returns its tracked stock.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	order, err := h.orderService.CancelOrder(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidOrderStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Order cannot be cancelled.", err.Error()))
		default:
			utils.LogError(err, "CancelOrder: error from orderService.CancelOrder")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to cancel order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, order)
}
