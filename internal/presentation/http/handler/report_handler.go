package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/application/service"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/response"
)

// ReportHandler serves the analytics reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Sales handles the sales summary over [start, end]
func (h *ReportHandler) Sales(c *gin.Context) {
	start, end, err := queryRange(c, h.reportService.Now(), service.DefaultSalesWindowDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportService.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales report retrieved successfully", report)
}

// Inventory handles the inventory summary
func (h *ReportHandler) Inventory(c *gin.Context) {
	report, err := h.reportService.InventoryReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Inventory report retrieved successfully", report)
}

// Customers handles the customer summary
func (h *ReportHandler) Customers(c *gin.Context) {
	report, err := h.reportService.CustomerReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer report retrieved successfully", report)
}

// TopCustomers handles the highest spenders
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	limit, err := queryLimit(c, service.DefaultCustomerListLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	customers, err := h.reportService.TopCustomers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Top customers retrieved successfully", customers)
}

// RecentCustomers handles the most recently visiting customers
func (h *ReportHandler) RecentCustomers(c *gin.Context) {
	limit, err := queryLimit(c, service.DefaultCustomerListLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	customers, err := h.reportService.RecentCustomers(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent customers retrieved successfully", customers)
}

// StockMovement handles per-product stock flow over the last days
func (h *ReportHandler) StockMovement(c *gin.Context) {
	days, err := queryDays(c, service.DefaultStockMovementDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows, err := h.reportService.StockMovement(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock movement retrieved successfully", rows)
}

// DailySales handles the per-day sales series
func (h *ReportHandler) DailySales(c *gin.Context) {
	days, err := queryDays(c, service.DefaultDailySalesDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	series, err := h.reportService.DailySales(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Daily sales retrieved successfully", series)
}

// TopProducts handles the best sellers by revenue
func (h *ReportHandler) TopProducts(c *gin.Context) {
	limit, err := queryLimit(c, service.DefaultTopProductsLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Top products retrieved successfully", products)
}

// Dashboard handles the combined overview
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

// ExportSales handles downloading the sales summary over [start, end]
func (h *ReportHandler) ExportSales(c *gin.Context) {
	format, err := queryFormat(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start, end, err := queryRange(c, h.reportService.Now(), service.DefaultSalesWindowDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	download(c, format, func(w io.Writer) (string, error) {
		return h.reportService.ExportSalesReport(c.Request.Context(), w, format, start, end)
	})
}

// ExportInventory handles downloading the inventory summary
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	format, err := queryFormat(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	download(c, format, func(w io.Writer) (string, error) {
		return h.reportService.ExportInventoryReport(c.Request.Context(), w, format)
	})
}

// ExportCustomers handles downloading the customer summary
func (h *ReportHandler) ExportCustomers(c *gin.Context) {
	format, err := queryFormat(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	download(c, format, func(w io.Writer) (string, error) {
		return h.reportService.ExportCustomerReport(c.Request.Context(), w, format)
	})
}
