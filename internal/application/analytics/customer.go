package analytics

import (
	"sort"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// TopCustomersInReport is how many customers the customer report ranks
const TopCustomersInReport = 10

type LoyaltyStats struct {
	New     int `json:"new"`
	Regular int `json:"regular"`
	Silver  int `json:"silver"`
	Gold    int `json:"gold"`
}

type CustomerReport struct {
	TotalCustomers int               `json:"totalCustomers"`
	TotalRevenue   decimal.Decimal   `json:"totalRevenue"`
	AverageSpend   decimal.Decimal   `json:"averageSpend"`
	LoyaltyStats   LoyaltyStats      `json:"loyaltyStats"`
	TopCustomers   []entity.Customer `json:"topCustomers"`
}

// TopCustomers ranks customers by lifetime spend, highest first. Ties keep
// input order.
func TopCustomers(customers []entity.Customer, limit int) []entity.Customer {
	sorted := append([]entity.Customer{}, customers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalSpent.GreaterThan(sorted[j].TotalSpent)
	})
	return truncate(sorted, limit)
}

// RecentCustomers ranks customers by last visit, most recent first. Customers
// who never visited sort last.
func RecentCustomers(customers []entity.Customer, limit int) []entity.Customer {
	sorted := append([]entity.Customer{}, customers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lastVisit(sorted[i]).After(lastVisit(sorted[j]))
	})
	return truncate(sorted, limit)
}

func lastVisit(c entity.Customer) time.Time {
	if c.LastVisit == nil {
		return time.Time{}
	}
	return *c.LastVisit
}

func BuildCustomerReport(customers []entity.Customer) CustomerReport {
	report := CustomerReport{
		TotalCustomers: len(customers),
		TotalRevenue:   decimal.Zero,
		AverageSpend:   decimal.Zero,
		TopCustomers:   TopCustomers(customers, TopCustomersInReport),
	}

	for _, c := range customers {
		report.TotalRevenue = report.TotalRevenue.Add(c.TotalSpent)
		switch LoyaltyTier(c.TotalSpent) {
		case enum.LoyaltyTierNew:
			report.LoyaltyStats.New++
		case enum.LoyaltyTierRegular:
			report.LoyaltyStats.Regular++
		case enum.LoyaltyTierSilver:
			report.LoyaltyStats.Silver++
		case enum.LoyaltyTierGold:
			report.LoyaltyStats.Gold++
		}
	}

	if len(customers) > 0 {
		report.AverageSpend = report.TotalRevenue.Div(decimal.NewFromInt(int64(len(customers))))
	}
	return report
}

// UpdateCustomerStats records a visit worth total at now. The argument is
// passed by value and returned updated; the caller's copy is untouched.
func UpdateCustomerStats(c entity.Customer, total decimal.Decimal, now time.Time) entity.Customer {
	c.VisitCount++
	c.TotalSpent = c.TotalSpent.Add(total)
	visited := now
	c.LastVisit = &visited
	return c
}

// CustomerTransactions returns the transactions attributed to customerID in
// input order
func CustomerTransactions(transactions []entity.Transaction, customerID string) []entity.Transaction {
	out := []entity.Transaction{}
	for _, t := range transactions {
		if t.CustomerID != nil && *t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out
}
