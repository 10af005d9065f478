package analytics

import (
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type InventoryReport struct {
	TotalProducts   int              `json:"totalProducts"`
	TotalValue      decimal.Decimal  `json:"totalValue"`
	LowStockCount   int              `json:"lowStockCount"`
	OutOfStockCount int              `json:"outOfStockCount"`
	LowStockItems   []entity.Product `json:"lowStockItems"`
	OutOfStockItems []entity.Product `json:"outOfStockItems"`
}

// TotalInventoryValue sums price × quantity over all products
func TotalInventoryValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Value())
	}
	return total
}

// BuildInventoryReport partitions products into low and out of stock. The two
// partitions are disjoint and keep input order.
func BuildInventoryReport(products []entity.Product) InventoryReport {
	report := InventoryReport{
		TotalProducts:   len(products),
		TotalValue:      TotalInventoryValue(products),
		LowStockItems:   []entity.Product{},
		OutOfStockItems: []entity.Product{},
	}
	for _, p := range products {
		switch {
		case p.IsOutOfStock():
			report.OutOfStockItems = append(report.OutOfStockItems, p)
		case p.IsLowStock():
			report.LowStockItems = append(report.LowStockItems, p)
		}
	}
	report.LowStockCount = len(report.LowStockItems)
	report.OutOfStockCount = len(report.OutOfStockItems)
	return report
}

// LowStockProducts returns every product that needs restocking, low or out
// of stock, in input order
func LowStockProducts(products []entity.Product) []entity.Product {
	out := []entity.Product{}
	for _, p := range products {
		if p.IsOutOfStock() || p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}
