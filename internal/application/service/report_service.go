package service

import (
	"context"
	"time"

	"github.com/sangkips/retail-api/internal/application/analytics"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Report defaults
const (
	DefaultSalesWindowDays    = 30
	DefaultDailySalesDays     = 7
	DefaultStockMovementDays  = 30
	DefaultCustomerListLimit  = 5
	DefaultTopProductsLimit   = 10
	dashboardTopProductsLimit = 5
)

// ReportService builds report view-models from the current snapshot
type ReportService struct {
	store repository.Store
	now   func() time.Time
}

// NewReportService creates a new report service. A nil clock means time.Now.
func NewReportService(store repository.Store, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{store: store, now: now}
}

// Now returns the instant reports are computed against
func (s *ReportService) Now() time.Time {
	return s.now().UTC()
}

// Dashboard is the landing page summary
type Dashboard struct {
	TotalProducts       int                      `json:"totalProducts"`
	TotalInventoryValue decimal.Decimal          `json:"totalInventoryValue"`
	LowStockCount       int                      `json:"lowStockCount"`
	LowStockItems       []entity.Product         `json:"lowStockItems"`
	TotalCustomers      int                      `json:"totalCustomers"`
	LoyaltyStats        analytics.LoyaltyStats   `json:"loyaltyStats"`
	Sales               analytics.SalesReport    `json:"sales"`
	DailySales          []analytics.DailySales   `json:"dailySales"`
	TopProducts         []analytics.ProductSales `json:"topProducts"`
}

// SalesReport totals sales between start and end inclusive
func (s *ReportService) SalesReport(ctx context.Context, start, end time.Time) (*analytics.SalesReport, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	report := analytics.BuildSalesReport(txns, start, end)
	return &report, nil
}

// InventoryReport values stock and lists what needs reordering
func (s *ReportService) InventoryReport(ctx context.Context) (*analytics.InventoryReport, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, err
	}
	report := analytics.BuildInventoryReport(products)
	return &report, nil
}

// CustomerReport summarizes spend and loyalty distribution
func (s *ReportService) CustomerReport(ctx context.Context) (*analytics.CustomerReport, error) {
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return nil, err
	}
	report := analytics.BuildCustomerReport(customers)
	return &report, nil
}

// TopCustomers ranks customers by lifetime spend
func (s *ReportService) TopCustomers(ctx context.Context, limit int) ([]analytics.CustomerWithTier, error) {
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.WithTiers(analytics.TopCustomers(customers, limit)), nil
}

// RecentCustomers ranks customers by their last visit
func (s *ReportService) RecentCustomers(ctx context.Context, limit int) ([]analytics.CustomerWithTier, error) {
	customers, err := s.store.Customers(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.WithTiers(analytics.RecentCustomers(customers, limit)), nil
}

// StockMovement reports per-product stock flow over the trailing days
func (s *ReportService) StockMovement(ctx context.Context, days int) ([]analytics.StockMovement, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.StockMovementReport(snap.Transactions, snap.Products, days, s.Now()), nil
}

// DailySales returns the per-day sales series ending today
func (s *ReportService) DailySales(ctx context.Context, days int) ([]analytics.DailySales, error) {
	txns, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.DailySalesSeries(txns, days, s.Now()), nil
}

// TopProducts ranks products by sales revenue
func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]analytics.ProductSales, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.TopSellingProducts(snap.Transactions, snap.Products, limit), nil
}

// Dashboard combines the headline numbers of every report from one snapshot
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	lowStock := analytics.LowStockProducts(snap.Products)
	customers := analytics.BuildCustomerReport(snap.Customers)

	return &Dashboard{
		TotalProducts:       len(snap.Products),
		TotalInventoryValue: analytics.TotalInventoryValue(snap.Products),
		LowStockCount:       len(lowStock),
		LowStockItems:       lowStock,
		TotalCustomers:      customers.TotalCustomers,
		LoyaltyStats:        customers.LoyaltyStats,
		Sales:               analytics.BuildSalesReport(snap.Transactions, now.AddDate(0, 0, -DefaultSalesWindowDays), now),
		DailySales:          analytics.DailySalesSeries(snap.Transactions, DefaultDailySalesDays, now),
		TopProducts:         analytics.TopSellingProducts(snap.Transactions, snap.Products, dashboardTopProductsLimit),
	}, nil
}
