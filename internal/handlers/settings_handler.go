package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/models"
)

type SettingsHandler struct {
	settings config.FormSettings
}

func NewSettingsHandler(settings config.FormSettings) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// @Summary Form Settings
// @Description Required fields, enabled features and the debt types the forms offer
// @Tags Settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requiredFields":  h.settings.RequiredFields,
		"enabledFeatures": h.settings.EnabledFeatures,
		"debtTypes":       models.DebtTypes,
	})
}
