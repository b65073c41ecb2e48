package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
)

// SettingsHandler handles shop settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the shop settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings updates the shop settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		ShopName       string `json:"shop_name"`
		Address        string `json:"address"`
		Phone          string `json:"phone"`
		Email          string `json:"email"`
		ReceiptNote    string `json:"receipt_note"`
		Currency       string `json:"currency"`
		DateFormat     string `json:"date_format"`
		LowStockAlerts bool   `json:"low_stock_alerts"`
		OverdueAlerts  bool   `json:"overdue_alerts"`
		OverdueDays    int    `json:"overdue_days"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		ShopName:       req.ShopName,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		ReceiptNote:    req.ReceiptNote,
		Currency:       req.Currency,
		DateFormat:     req.DateFormat,
		LowStockAlerts: req.LowStockAlerts,
		OverdueAlerts:  req.OverdueAlerts,
		OverdueDays:    req.OverdueDays,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
