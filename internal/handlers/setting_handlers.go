package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingHandler holds the settings service.
type SettingHandler struct {
	settingsService services.SettingsService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(ss services.SettingsService) *SettingHandler {
	return &SettingHandler{settingsService: ss}
}

// GetSettings returns the merged application settings.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get()
	if err != nil {
		utils.LogError(err, "GetSettings: error from settingsService.Get")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch settings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettingsSection replaces one settings section (restaurant,
// operations or tax) and returns the merged result.
func (h *SettingHandler) UpdateSettingsSection(c *gin.Context) {
	section := c.Param("section")
	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload.", err.Error()))
		return
	}
	settings, err := h.settingsService.UpdateSection(section, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownSettingsSection):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unknown settings section.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid settings payload.", err.Error()))
		default:
			utils.LogError(err, "UpdateSettingsSection: error from settingsService.UpdateSection")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update settings.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, settings)
}
