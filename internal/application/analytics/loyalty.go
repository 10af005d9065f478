package analytics

import (
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var (
	silverThreshold = decimal.NewFromInt(200)
	goldThreshold   = decimal.NewFromInt(500)
)

// LoyaltyTier classifies lifetime spend. Each tier includes its lower bound.
func LoyaltyTier(totalSpent decimal.Decimal) enum.LoyaltyTier {
	switch {
	case totalSpent.IsZero():
		return enum.LoyaltyTierNew
	case totalSpent.GreaterThanOrEqual(goldThreshold):
		return enum.LoyaltyTierGold
	case totalSpent.GreaterThanOrEqual(silverThreshold):
		return enum.LoyaltyTierSilver
	default:
		return enum.LoyaltyTierRegular
	}
}

// CustomerWithTier is a customer together with its derived tier
type CustomerWithTier struct {
	entity.Customer
	LoyaltyTier enum.LoyaltyTier `json:"loyaltyTier"`
}

// WithTiers annotates each customer with its loyalty tier
func WithTiers(customers []entity.Customer) []CustomerWithTier {
	out := make([]CustomerWithTier, len(customers))
	for i, c := range customers {
		out[i] = CustomerWithTier{Customer: c, LoyaltyTier: LoyaltyTier(c.TotalSpent)}
	}
	return out
}
