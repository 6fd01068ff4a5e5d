package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/application/service"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billing-api/pkg/apperror"
)

// SettingsHandler exposes the customization sections
type SettingsHandler struct {
	settings *service.CustomizationService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *service.CustomizationService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetAll returns every section
func (h *SettingsHandler) GetAll(c *gin.Context) {
	response.OK(c, "Settings retrieved successfully", h.settings.All())
}

// GetSection returns one section
func (h *SettingsHandler) GetSection(c *gin.Context) {
	section, ok := enum.ParseSection(c.Param("section"))
	if !ok {
		response.Error(c, apperror.ErrUnknownSection)
		return
	}

	value, err := h.settings.GetSection(section)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", value)
}

// UpdateSection merges a partial object into one section
func (h *SettingsHandler) UpdateSection(c *gin.Context) {
	section, ok := enum.ParseSection(c.Param("section"))
	if !ok {
		response.Error(c, apperror.ErrUnknownSection)
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	value, err := h.settings.UpdateSection(c.Request.Context(), section, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", value)
}

// ResetSection restores one section to its defaults
func (h *SettingsHandler) ResetSection(c *gin.Context) {
	section, ok := enum.ParseSection(c.Param("section"))
	if !ok {
		response.Error(c, apperror.ErrUnknownSection)
		return
	}

	value, err := h.settings.ResetSection(c.Request.Context(), section)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings reset to defaults", value)
}

// ResetAll restores every section
func (h *SettingsHandler) ResetAll(c *gin.Context) {
	value, err := h.settings.ResetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "All settings reset to defaults", value)
}

// EnabledPaymentModes lists the modes offered at checkout
func (h *SettingsHandler) EnabledPaymentModes(c *gin.Context) {
	response.OK(c, "Payment modes retrieved successfully", h.settings.EnabledPaymentModes())
}

// Options returns the enabled lists used to fill form selects
func (h *SettingsHandler) Options(c *gin.Context) {
	response.OK(c, "Options retrieved successfully", gin.H{
		"units":              h.settings.EnabledUnits(),
		"product_categories": h.settings.EnabledProductCategories(),
		"expense_categories": h.settings.EnabledExpenseCategories(),
		"payment_modes":      h.settings.EnabledPaymentModes(),
		"gst_rates":          h.settings.GSTRates(),
	})
}
