package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportData(t *testing.T, env *testEnv) {
	t.Helper()
	day := func(offset int) time.Time { return fixedNow.AddDate(0, 0, offset) }
	visit := day(-1)

	require.NoError(t, env.store.Mutate(context.Background(), func(s *entity.Snapshot) error {
		s.Products = []entity.Product{
			{ID: "p1", Name: "Espresso", Price: decimal.NewFromInt(20), Quantity: 10, MinStockLevel: 5},
			{ID: "p2", Name: "Muffin", Price: decimal.NewFromInt(15), Quantity: 2, MinStockLevel: 5},
			{ID: "p3", Name: "Scone", Price: decimal.NewFromInt(12), Quantity: 0, MinStockLevel: 2},
		}
		s.Customers = []entity.Customer{
			{ID: "c1", Name: "Ann", TotalSpent: decimal.NewFromInt(600), VisitCount: 9, LastVisit: &visit},
			{ID: "c2", Name: "Bob", TotalSpent: decimal.NewFromInt(40), VisitCount: 1},
			{ID: "c3", Name: "Cat"},
		}
		s.Transactions = []entity.Transaction{
			{ID: "t1", Type: enum.TransactionTypeRestock, ProductID: "p1", Quantity: 10, Total: decimal.NewFromInt(200), Date: day(-3)},
			{ID: "t2", Type: enum.TransactionTypeSale, ProductID: "p1", Quantity: 2, Total: decimal.NewFromInt(40), Date: day(-1)},
			{ID: "t3", Type: enum.TransactionTypeSale, ProductID: "p2", Quantity: 4, Total: decimal.NewFromInt(60), Date: day(0)},
			{ID: "t4", Type: enum.TransactionTypeSale, ProductID: "p1", Quantity: 1, Total: decimal.NewFromInt(10), Date: day(-45)},
		}
		return nil
	}))
}

func TestReportService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedReportData(t, env)
	svc := NewReportService(env.store, fixedClock)

	t.Run("Sales", func(t *testing.T) {
		report, err := svc.SalesReport(ctx, fixedNow.AddDate(0, 0, -30), fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "100", report.TotalSales.String())
		assert.Equal(t, 2, report.TotalTransactions)
		assert.Equal(t, 6, report.TotalItemsSold)
		assert.Equal(t, "50", report.AverageTransaction.String())
	})

	t.Run("Inventory", func(t *testing.T) {
		report, err := svc.InventoryReport(ctx)
		require.NoError(t, err)
		assert.Equal(t, "230", report.TotalValue.String())
		assert.Equal(t, 1, report.LowStockCount)
		assert.Equal(t, 1, report.OutOfStockCount)
	})

	t.Run("Customers", func(t *testing.T) {
		report, err := svc.CustomerReport(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalCustomers)
		assert.Equal(t, 1, report.LoyaltyStats.Gold)
		assert.Equal(t, 1, report.LoyaltyStats.New)

		top, err := svc.TopCustomers(ctx, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "c1", top[0].ID)
		assert.Equal(t, enum.LoyaltyTierGold, top[0].LoyaltyTier)

		recent, err := svc.RecentCustomers(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "c1", recent[0].ID)
	})

	t.Run("StockMovement", func(t *testing.T) {
		rows, err := svc.StockMovement(ctx, 30)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, 10, rows[0].TotalIn)
		assert.Equal(t, 2, rows[0].TotalOut)
		assert.Equal(t, 8, rows[0].NetMovement)
		assert.Equal(t, -4, rows[1].NetMovement)
	})

	t.Run("DailySales", func(t *testing.T) {
		series, err := svc.DailySales(ctx, 7)
		require.NoError(t, err)
		require.Len(t, series, 7)
		assert.Equal(t, "2024-03-15", series[6].Date)
		assert.Equal(t, "60", series[6].Sales.String())
		assert.Equal(t, "40", series[5].Sales.String())
	})

	t.Run("TopProducts", func(t *testing.T) {
		top, err := svc.TopProducts(ctx, 10)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "p2", top[0].ID)
		assert.Equal(t, "Muffin", top[0].Name)
		assert.Equal(t, "p1", top[1].ID)
		assert.Equal(t, 3, top[1].Quantity)
	})

	t.Run("Dashboard", func(t *testing.T) {
		d, err := svc.Dashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, d.TotalProducts)
		assert.Equal(t, "230", d.TotalInventoryValue.String())
		assert.Equal(t, 2, d.LowStockCount)
		assert.Equal(t, 3, d.TotalCustomers)
		assert.Equal(t, "100", d.Sales.TotalSales.String())
		assert.Len(t, d.DailySales, DefaultDailySalesDays)
		assert.Len(t, d.TopProducts, 2)
	})
}
