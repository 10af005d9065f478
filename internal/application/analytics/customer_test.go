package analytics

import (
	"testing"
	"time"

	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerIDs(customers []entity.Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.ID
	}
	return out
}

func TestTopCustomers(t *testing.T) {
	customers := []entity.Customer{
		customer("a", "100", nil),
		customer("b", "300", nil),
		customer("c", "100", nil),
		customer("d", "0", nil),
		customer("e", "300", nil),
	}

	t.Run("SortedDescendingStable", func(t *testing.T) {
		got := TopCustomers(customers, 10)
		assert.Equal(t, []string{"b", "e", "a", "c", "d"}, customerIDs(got))
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].TotalSpent.GreaterThanOrEqual(got[i].TotalSpent))
		}
	})

	t.Run("Length", func(t *testing.T) {
		for _, limit := range []int{0, 1, 3, 5, 8} {
			assert.Len(t, TopCustomers(customers, limit), min(limit, len(customers)))
		}
		assert.Empty(t, TopCustomers(customers, -1))
		assert.Empty(t, TopCustomers(nil, 5))
	})

	t.Run("DoesNotReorderInput", func(t *testing.T) {
		TopCustomers(customers, 3)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, customerIDs(customers))
	})
}

func TestRecentCustomers(t *testing.T) {
	customers := []entity.Customer{
		customer("never1", "0", nil),
		customer("old", "10", ptr(at(2024, 1, 1, 9))),
		customer("newest", "10", ptr(at(2024, 3, 1, 9))),
		customer("never2", "0", nil),
		customer("mid", "10", ptr(at(2024, 2, 1, 9))),
	}

	assert.Equal(t, []string{"newest", "mid", "old", "never1", "never2"}, customerIDs(RecentCustomers(customers, 10)))
	assert.Equal(t, []string{"newest", "mid"}, customerIDs(RecentCustomers(customers, 2)))
}

func TestBuildCustomerReport(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		report := BuildCustomerReport(nil)
		assert.Equal(t, 0, report.TotalCustomers)
		assert.True(t, report.AverageSpend.IsZero())
		assert.True(t, report.TotalRevenue.IsZero())
		assert.Empty(t, report.TopCustomers)
	})

	t.Run("Aggregates", func(t *testing.T) {
		report := BuildCustomerReport(customersWithSpend("0", "150", "250", "800", "199.99", "500"))

		assert.Equal(t, 6, report.TotalCustomers)
		assert.Equal(t, "1899.99", report.TotalRevenue.String())
		assert.True(t, report.AverageSpend.Equal(dec("1899.99").Div(dec("6"))))
		assert.Equal(t, LoyaltyStats{New: 1, Regular: 2, Silver: 1, Gold: 2}, report.LoyaltyStats)
		require.Len(t, report.TopCustomers, 6)
		assert.Equal(t, "d", report.TopCustomers[0].ID)
	})

	t.Run("TopTen", func(t *testing.T) {
		totals := make([]string, 15)
		for i := range totals {
			totals[i] = "10"
		}
		report := BuildCustomerReport(customersWithSpend(totals...))
		assert.Len(t, report.TopCustomers, TopCustomersInReport)
	})
}

func TestUpdateCustomerStats(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	t.Run("EndToEndExample", func(t *testing.T) {
		c := customer("c1", "0", nil)
		require.Equal(t, enum.LoyaltyTierNew, LoyaltyTier(c.TotalSpent))

		updated := UpdateCustomerStats(c, dec("250"), now)

		assert.Equal(t, "250", updated.TotalSpent.String())
		assert.Equal(t, enum.LoyaltyTierSilver, LoyaltyTier(updated.TotalSpent))
		assert.Equal(t, c.VisitCount+1, updated.VisitCount)
		require.NotNil(t, updated.LastVisit)
		assert.Equal(t, now, *updated.LastVisit)
	})

	t.Run("InputUntouched", func(t *testing.T) {
		previous := at(2024, 1, 1, 12)
		c := customer("c1", "40", &previous)
		c.VisitCount = 2

		updated := UpdateCustomerStats(c, dec("10"), now)

		assert.Equal(t, 2, c.VisitCount)
		assert.Equal(t, "40", c.TotalSpent.String())
		assert.Equal(t, previous, *c.LastVisit)
		assert.Equal(t, 3, updated.VisitCount)
		assert.Equal(t, "50", updated.TotalSpent.String())
	})
}

func TestCustomerTransactions(t *testing.T) {
	t1 := sale("p1", 1, "5", at(2024, 1, 1, 9))
	t1.CustomerID = ptr("c1")
	t2 := sale("p2", 1, "5", at(2024, 1, 2, 9))
	t2.CustomerID = ptr("c2")
	t3 := sale("p3", 1, "5", at(2024, 1, 3, 9))
	t4 := sale("p4", 2, "9", at(2024, 1, 4, 9))
	t4.CustomerID = ptr("c1")

	got := CustomerTransactions([]entity.Transaction{t1, t2, t3, t4}, "c1")
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ProductID)
	assert.Equal(t, "p4", got[1].ProductID)

	assert.NotNil(t, CustomerTransactions(nil, "c1"))
}
