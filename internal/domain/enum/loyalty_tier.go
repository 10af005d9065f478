package enum

import "encoding/json"

// LoyaltyTier represents a customer's loyalty classification
type LoyaltyTier int

const (
	LoyaltyTierNew     LoyaltyTier = 0
	LoyaltyTierRegular LoyaltyTier = 1
	LoyaltyTierSilver  LoyaltyTier = 2
	LoyaltyTierGold    LoyaltyTier = 3
)

func (t LoyaltyTier) String() string {
	return [...]string{"New", "Regular", "Silver", "Gold"}[t]
}

func (t LoyaltyTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
