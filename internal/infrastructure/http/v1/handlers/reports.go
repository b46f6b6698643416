package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the read-only projection endpoints.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{BaseHandler: base, service: service}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// Sales handles GET /reports/sales?startDate=&endDate=.
func (h *ReportHandler) Sales(c *gin.Context) {
	items, err := h.service.GetSalesReport(c.Request.Context(),
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Inventory handles GET /reports/inventory.
func (h *ReportHandler) Inventory(c *gin.Context) {
	items, err := h.service.GetInventoryReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// StockTimeline handles GET /reports/stock-timeline/:id.
func (h *ReportHandler) StockTimeline(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	movements, err := h.service.GetStockTimeline(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, movements)
}

// PurchaseHistory handles GET /reports/purchase-history/:id.
func (h *ReportHandler) PurchaseHistory(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	history, err := h.service.GetPurchaseHistory(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, history)
}

// ExportSales handles GET /reports/sales/export, returning an xlsx download.
func (h *ReportHandler) ExportSales(c *gin.Context) {
	buf, err := h.service.ExportSalesReport(c.Request.Context(),
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportInventory handles GET /reports/inventory/export.
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	buf, err := h.service.ExportInventoryReport(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
