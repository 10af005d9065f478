package analytics

import (
	"sort"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UnknownProductName labels sales of products that no longer exist
const UnknownProductName = "Unknown Product"

type SalesReport struct {
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalTransactions  int             `json:"totalTransactions"`
	TotalItemsSold     int             `json:"totalItemsSold"`
	AverageTransaction decimal.Decimal `json:"averageTransaction"`
}

type DailySales struct {
	Date  string          `json:"date"`
	Sales decimal.Decimal `json:"sales"`
}

type ProductSales struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// BuildSalesReport totals the sales dated within [start, end], both ends
// inclusive
func BuildSalesReport(transactions []entity.Transaction, start, end time.Time) SalesReport {
	report := SalesReport{TotalSales: decimal.Zero, AverageTransaction: decimal.Zero}
	for _, t := range transactions {
		if !t.IsSale() || t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		report.TotalSales = report.TotalSales.Add(t.Total)
		report.TotalTransactions++
		report.TotalItemsSold += t.Quantity
	}
	if report.TotalTransactions > 0 {
		report.AverageTransaction = report.TotalSales.Div(decimal.NewFromInt(int64(report.TotalTransactions)))
	}
	return report
}

// DailySalesSeries returns one entry per UTC calendar day for the last days
// days ending on now's day, oldest first. A sale counts toward the day whose
// date token equals its own.
func DailySalesSeries(transactions []entity.Transaction, days int, now time.Time) []DailySales {
	if days <= 0 {
		return []DailySales{}
	}

	byDay := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if !t.IsSale() {
			continue
		}
		token := t.Date.UTC().Format(time.DateOnly)
		byDay[token] = byDay[token].Add(t.Total)
	}

	today := now.UTC()
	series := make([]DailySales, 0, days)
	for i := days - 1; i >= 0; i-- {
		token := today.AddDate(0, 0, -i).Format(time.DateOnly)
		sales, ok := byDay[token]
		if !ok {
			sales = decimal.Zero
		}
		series = append(series, DailySales{Date: token, Sales: sales})
	}
	return series
}

// TopSellingProducts groups sales by product and ranks them by revenue.
// Products are listed in first-sale order before ranking, so equal revenues
// keep that order.
func TopSellingProducts(transactions []entity.Transaction, products []entity.Product, limit int) []ProductSales {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	index := make(map[string]int)
	ranked := []ProductSales{}
	for _, t := range transactions {
		if !t.IsSale() {
			continue
		}
		i, ok := index[t.ProductID]
		if !ok {
			name, found := names[t.ProductID]
			if !found {
				name = UnknownProductName
			}
			i = len(ranked)
			index[t.ProductID] = i
			ranked = append(ranked, ProductSales{ID: t.ProductID, Name: name, Revenue: decimal.Zero})
		}
		ranked[i].Quantity += t.Quantity
		ranked[i].Revenue = ranked[i].Revenue.Add(t.Total)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	return truncate(ranked, limit)
}
