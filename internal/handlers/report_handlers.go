package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant_pos_backend/internal/models"
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

func respondReportError(c *gin.Context, err error, action string) {
	if errors.Is(err, services.ErrInvalidDateKey) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date. Expected YYYY-MM-DD.", err.Error()))
		return
	}
	if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid report request.", err.Error()))
		return
	}
	utils.LogError(err, action+": error from reportService")
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Report operation failed.", "Internal error"))
}

// GetDailyReport returns the report for one business day, building it on
// demand when no stored report exists yet. Defaults to today.
func (h *ReportHandler) GetDailyReport(c *gin.Context) {
	dateKey := c.Query("date")
	if dateKey == "" {
		dateKey = models.DateKeyFor(time.Now())
	}
	report, err := h.reportService.GetReport(dateKey)
	if err != nil {
		respondReportError(c, err, "GetDailyReport")
		return
	}
	c.JSON(http.StatusOK, report)
}

// RecomputeDailyReport rebuilds a day's report from its orders.
func (h *ReportHandler) RecomputeDailyReport(c *gin.Context) {
	dateKey := c.Query("date")
	if dateKey == "" {
		dateKey = models.DateKeyFor(time.Now())
	}
	report, err := h.reportService.Recompute(dateKey)
	if err != nil {
		respondReportError(c, err, "RecomputeDailyReport")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetReportSummary aggregates stored reports over a date range.
func (h *ReportHandler) GetReportSummary(c *gin.Context) {
	startKey := c.Query("start")
	endKey := c.Query("end")
	if startKey == "" || endKey == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "start and end query parameters are required.", ""))
		return
	}
	summary, err := h.reportService.Summary(startKey, endKey)
	if err != nil {
		respondReportError(c, err, "GetReportSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PurgeOrders removes orders older than the retention window.
func (h *ReportHandler) PurgeOrders(c *gin.Context) {
	daysToKeep := 30
	if raw := c.Query("days_to_keep"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid days_to_keep value.", err.Error()))
			return
		}
		daysToKeep = parsed
	}
	deleted, err := h.reportService.PurgeOrdersBefore(daysToKeep)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "days_to_keep must be at least 1.", err.Error()))
			return
		}
		utils.LogError(err, "PurgeOrders: error from reportService.PurgeOrdersBefore")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Purge failed.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_orders": deleted})
}
