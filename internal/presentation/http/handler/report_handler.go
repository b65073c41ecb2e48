package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard handles getting the dashboard statistics
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// GetTopDebtors handles getting customers ranked by outstanding balance
func (h *ReportHandler) GetTopDebtors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	debtors, err := h.reportService.GetTopDebtors(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top debtors retrieved successfully", gin.H{
		"debtors": debtors,
	})
}

// GetSalesByBrand handles getting sold quantity and revenue grouped by brand
func (h *ReportHandler) GetSalesByBrand(c *gin.Context) {
	var start, end time.Time
	if t := parseDateQuery(c, "start_date"); t != nil {
		start = *t
	}
	if t := parseDateQuery(c, "end_date"); t != nil {
		// A date-only upper bound is inclusive of the named day.
		end = t.Add(24*time.Hour - time.Second)
	}

	results, err := h.reportService.GetSalesByBrand(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales by brand retrieved successfully", gin.H{
		"brands": results,
	})
}

// GetDailySales handles getting billing and collection totals per day
func (h *ReportHandler) GetDailySales(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "14"))

	results, err := h.reportService.GetDailySales(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily sales retrieved successfully", gin.H{
		"days": results,
	})
}

// GetPaymentMethodTotals handles getting payments grouped by method
func (h *ReportHandler) GetPaymentMethodTotals(c *gin.Context) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now
	if t := parseDateQuery(c, "start_date"); t != nil {
		start = *t
	}
	if t := parseDateQuery(c, "end_date"); t != nil {
		end = t.Add(24*time.Hour - time.Second)
	}

	results, err := h.reportService.GetPaymentMethodTotals(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment method totals retrieved successfully", gin.H{
		"methods": results,
	})
}
