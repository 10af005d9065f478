package service

import (
	"context"
	"io"
	"time"

	"github.com/sangkips/retail-api/internal/application/analytics"
	"github.com/sangkips/retail-api/pkg/export"
)

// Report export filename prefixes
const (
	SalesReportExportBaseName     = "sales_report"
	InventoryReportExportBaseName = "inventory_report"
	CustomerReportExportBaseName  = "customers_report"
)

var reportExportHeaders = []string{"Metric", "Value"}

// SalesReportTable lays out a sales summary as metric/value rows
func SalesReportTable(r analytics.SalesReport, start, end time.Time) export.Table {
	return export.Table{
		Sheet:   "Sales Report",
		Headers: reportExportHeaders,
		Rows: [][]any{
			{"Period", start.UTC().Format(time.DateOnly) + " to " + end.UTC().Format(time.DateOnly)},
			{"Total Sales", r.TotalSales},
			{"Total Transactions", r.TotalTransactions},
			{"Total Items Sold", r.TotalItemsSold},
			{"Average Transaction", r.AverageTransaction},
		},
	}
}

// InventoryReportTable lays out an inventory summary as metric/value rows
func InventoryReportTable(r analytics.InventoryReport) export.Table {
	return export.Table{
		Sheet:   "Inventory Report",
		Headers: reportExportHeaders,
		Rows: [][]any{
			{"Total Products", r.TotalProducts},
			{"Total Inventory Value", r.TotalValue},
			{"Low Stock Items", r.LowStockCount},
			{"Out of Stock Items", r.OutOfStockCount},
		},
	}
}

// CustomerReportTable lays out a customer summary as metric/value rows
func CustomerReportTable(r analytics.CustomerReport) export.Table {
	return export.Table{
		Sheet:   "Customer Report",
		Headers: reportExportHeaders,
		Rows: [][]any{
			{"Total Customers", r.TotalCustomers},
			{"Total Revenue", r.TotalRevenue},
			{"Average Spend", r.AverageSpend},
			{"New Customers", r.LoyaltyStats.New},
			{"Regular", r.LoyaltyStats.Regular},
			{"Silver", r.LoyaltyStats.Silver},
			{"Gold", r.LoyaltyStats.Gold},
		},
	}
}

func (s *ReportService) writeExport(w io.Writer, format export.Format, base string, t export.Table) (string, error) {
	if err := export.Write(w, format, t); err != nil {
		return "", err
	}
	return format.Filename(base, s.Now()), nil
}

// ExportSalesReport writes the sales summary for [start, end] and returns
// the suggested download filename
func (s *ReportService) ExportSalesReport(ctx context.Context, w io.Writer, format export.Format, start, end time.Time) (string, error) {
	report, err := s.SalesReport(ctx, start, end)
	if err != nil {
		return "", err
	}
	return s.writeExport(w, format, SalesReportExportBaseName, SalesReportTable(*report, start, end))
}

// ExportInventoryReport writes the inventory summary
func (s *ReportService) ExportInventoryReport(ctx context.Context, w io.Writer, format export.Format) (string, error) {
	report, err := s.InventoryReport(ctx)
	if err != nil {
		return "", err
	}
	return s.writeExport(w, format, InventoryReportExportBaseName, InventoryReportTable(*report))
}

// ExportCustomerReport writes the customer summary
func (s *ReportService) ExportCustomerReport(ctx context.Context, w io.Writer, format export.Format) (string, error) {
	report, err := s.CustomerReport(ctx)
	if err != nil {
		return "", err
	}
	return s.writeExport(w, format, CustomerReportExportBaseName, CustomerReportTable(*report))
}
