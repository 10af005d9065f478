package analytics

import (
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id string, price string, quantity, minStock int) entity.Product {
	return entity.Product{
		ID: id, Name: "Product " + id, Price: dec(price),
		Quantity: quantity, MinStockLevel: minStock, LastUpdated: "2024-01-01",
	}
}

func customer(id, totalSpent string, lastVisit *time.Time) entity.Customer {
	return entity.Customer{ID: id, Name: "Customer " + id, TotalSpent: dec(totalSpent), LastVisit: lastVisit}
}

func sale(productID string, quantity int, total string, date time.Time) entity.Transaction {
	return entity.Transaction{
		ID: productID + date.String(), Type: enum.TransactionTypeSale, ProductID: productID,
		Quantity: quantity, Total: dec(total), Date: date,
	}
}

func restock(productID string, quantity int, date time.Time) entity.Transaction {
	return entity.Transaction{
		ID: productID + date.String(), Type: enum.TransactionTypeRestock, ProductID: productID,
		Quantity: quantity, Total: decimal.Zero, Date: date,
	}
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func customersWithSpend(totals ...string) []entity.Customer {
	out := make([]entity.Customer, len(totals))
	for i, total := range totals {
		out[i] = customer(string(rune('a'+i)), total, nil)
	}
	return out
}
